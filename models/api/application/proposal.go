package applicationapimodels

import (
	apimodels "recruiting-backend/models/api"

	"github.com/pkg/errors"
)

type ProposalListData struct {
	Partition string `json:"partition"` // all, actionable, waiting
	apimodels.Pagination
}

func (p ProposalListData) Validate() error {
	switch p.Partition {
	case "", "all", "actionable", "waiting":
	default:
		return errors.Errorf("unknown partition %q", p.Partition)
	}
	return p.Pagination.Validate()
}
