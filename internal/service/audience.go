package service

import (
	"fmt"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
	"github.com/marketjoys/AutomatedResponder/internal/model"
)

// BuildAudience resolves the campaign's lists into the final recipient
// sequence. List and member order is preserved, a duplicate email keeps its
// first occurrence only, and the deduplicated sequence is cut off at
// maxEmails. A failed list fetch aborts the whole build.
func (s *CampaignService) BuildAudience(listIDs []string, maxEmails int) ([]*model.Prospect, error) {
	audience := []*model.Prospect{}
	seen := map[string]bool{}

	for _, listID := range listIDs {
		prospects, err := s.ProspectRepo.GetByListID(listID)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", apperrors.ErrAudienceResolve, listID, err)
		}
		for _, p := range prospects {
			if seen[p.Email] {
				continue
			}
			seen[p.Email] = true
			audience = append(audience, p)
		}
	}

	if len(audience) > maxEmails {
		audience = audience[:maxEmails]
	}
	return audience, nil
}
