package types

const (
	ActionSessionLoadFailed   = "session_load_failed"
	ActionSessionCommitFailed = "session_commit_failed"
	ActionRenderFailed        = "render_failed"

	ActionDatabaseTransactionFailed = "database_transaction_failed"
)
