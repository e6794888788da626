package triage

// Journal keeps served visits that could not be published yet.
type Journal interface {
	Push(visit *Visit) error
	Eject(limit int) (visits []*Visit, err error)
	Len() int
}
