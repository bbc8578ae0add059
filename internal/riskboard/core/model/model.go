package model

// ModelInfo describes one scoring model offered by the scoring service.
type ModelInfo struct {
	// Name is the unique identifier and the selection key.
	Name string `json:"name"`

	// ModelType is a display label such as "tree" or "ensemble".
	ModelType string `json:"model_type"`

	// AUC is the validation score in [0, 1].
	AUC float64 `json:"auc"`

	Description string `json:"description"`
}

// FindModel returns the catalog entry with the given name.
func FindModel(models []ModelInfo, name string) (ModelInfo, bool) {
	for _, m := range models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelInfo{}, false
}
