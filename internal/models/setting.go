package models

// Setting is a single persisted key/value configuration entry.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}
