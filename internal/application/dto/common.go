package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse corpo de erro HTTP. O front-end consome `{"error": "..."}`,
// formato do proxy original; mantido para compatibilidade.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Code é um identificador que o front-end envia ora como string, ora como
// número (CODLEAD, CODPROD, codItem...). Desserializa ambos para string.
type Code string

// UnmarshalJSON aceita "12" e 12.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

// String devolve o código como string simples.
func (c Code) String() string { return string(c) }
