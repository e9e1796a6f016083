package storage

// Conventional bucket layout for experiment artifacts: datasets under data/,
// intermediate training files under work/, pretrained model parameters under
// model/.

// DataDir returns the conventional dataset directory for a project.
func DataDir(bucket, project string) string {
	return Join(bucket, "data", project)
}

// WorkDir returns the conventional directory for intermediate files produced
// during training.
func WorkDir(bucket, project string) string {
	return Join(bucket, "work", project)
}

// ModelDir returns the conventional directory for a pretrained model's
// parameters.
func ModelDir(bucket, model string) string {
	return Join(bucket, "model", model)
}
