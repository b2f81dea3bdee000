package matchqueue

// ImportQueueName is the river queue bulk imports run on.
const ImportQueueName = "imports"

// MatchImportJob processes one stored import run.
type MatchImportJob struct {
	ImportID string `json:"import_id"`
}

// Kind returns the job type identifier for River
func (MatchImportJob) Kind() string { return "match_import" }
