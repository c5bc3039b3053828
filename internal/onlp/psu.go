package onlp

type PsuCaps uint32

const (
	PsuCapsGetType PsuCaps = 1 << 0
	PsuCapsGetVin  PsuCaps = 1 << 1
	PsuCapsGetVout PsuCaps = 1 << 2
	PsuCapsGetIin  PsuCaps = 1 << 3
	PsuCapsGetIout PsuCaps = 1 << 4
	PsuCapsGetPin  PsuCaps = 1 << 5
	PsuCapsGetPout PsuCaps = 1 << 6
)

type PsuInfo struct {
	Header    OidHeader `json:"header"`
	Caps      PsuCaps   `json:"caps"`
	Model     string    `json:"model"`
	Serial    string    `json:"serial"`
	PowerGood bool      `json:"powerGood"`
}
