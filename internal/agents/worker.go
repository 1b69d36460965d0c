package agents

// NoEmployer is the employer reference of an unemployed worker.
// Firm IDs start at 1, so zero is never a valid employer.
const NoEmployer FirmID = 0

// Worker is a member of the labor force. Workers are owned by the outer
// simulation; firm-scoped logic mutates them through the shared slice.
type Worker struct {
	ID       uint64  `json:"id"`
	Employer FirmID  `json:"employer"` // Oc — NoEmployer when unemployed
	Wage     float64 `json:"wage"`     // w — zero while unemployed
}

// Employed reports whether the worker currently has an employer.
func (w *Worker) Employed() bool {
	return w.Employer != NoEmployer
}

// Release severs the employment relation.
func (w *Worker) Release() {
	w.Employer = NoEmployer
	w.Wage = 0
}
