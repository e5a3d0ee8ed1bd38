package entity

import "encoding/json"

// SessionUser é a identidade que chega serializada no cookie `user`
// (emitido pelo front-end). Não há emissão nem validação de token aqui.
type SessionUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CompanyID string `json:"ID_EMPRESA"`
}

// UnmarshalJSON tolera id e ID_EMPRESA numéricos ou string — o front-end
// envia os dois formatos dependendo da tela.
func (u *SessionUser) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Name      string          `json:"name"`
		Role      string          `json:"role"`
		CompanyID json.RawMessage `json:"ID_EMPRESA"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.Name = raw.Name
	u.Role = raw.Role
	u.ID = rawToString(raw.ID)
	u.CompanyID = rawToString(raw.CompanyID)
	return nil
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// IsAdmin reconhece as grafias de papel administrador usadas pelo front-end.
func (u SessionUser) IsAdmin() bool {
	switch u.Role {
	case "Administrador", "Admin", "admin", "ADMINISTRADOR":
		return true
	}
	return false
}
