package repl

// historyRecordedMsg is sent after an entry was written to the history store
type historyRecordedMsg struct {
	err error
}
