package models

// Station represents a railway station in the registry
type Station struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}
