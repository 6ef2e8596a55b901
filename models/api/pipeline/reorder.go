package pipelineapimodels

// ReorderView - подтвержденный порядок этапов после переноса
type ReorderView struct {
	StageIDs []string `json:"stage_ids"`
}
