package patient

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

func New(name string, rank int, department string) *Patient {
	return &Patient{
		ID:         uuid.New(),
		Name:       name,
		Rank:       rank,
		Department: department,
		AdmittedAt: time.Now(),
	}
}

type Patient struct {
	ID         uuid.UUID
	Name       string
	Rank       int
	Department string
	AdmittedAt time.Time
}

func (p *Patient) Priority() int {
	return p.Rank
}

func (p *Patient) Route() string {
	return p.Department
}

func (p *Patient) String() string {
	return fmt.Sprintf("%s (priority %d)", p.Name, p.Rank)
}
