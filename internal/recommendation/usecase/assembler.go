package usecase

import (
	"context"
	"sort"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// statusAssembler attaches platform statuses to recommendations with a single batched read.
type statusAssembler struct {
	platformStatusRepo PlatformStatusRepository
}

// attach returns one view per recommendation, in input order. Void statuses are dropped and
// the remaining ones are ordered newest first. A recommendation without statuses gets an
// empty slice.
func (a statusAssembler) attach(
	ctx context.Context,
	recs []*domain.Recommendation,
) ([]*domain.RecommendationView, error) {
	ids := make([]int64, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}

	statuses, err := a.platformStatusRepo.List(ctx, domain.PlatformStatusFilter{RecommendationIDs: ids})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].ID > statuses[j].ID
	})

	grouped := make(map[int64][]*domain.PlatformStatus, len(recs))
	for _, status := range statuses {
		if status.IsVoid() {
			continue
		}
		grouped[status.RecommendationID] = append(grouped[status.RecommendationID], status)
	}

	views := make([]*domain.RecommendationView, 0, len(recs))
	for _, rec := range recs {
		recStatuses := grouped[rec.ID]
		if recStatuses == nil {
			recStatuses = []*domain.PlatformStatus{}
		}
		views = append(views, &domain.RecommendationView{
			Recommendation:   rec,
			PlatformStatuses: recStatuses,
		})
	}

	return views, nil
}

// attachOne is attach for a single recommendation.
func (a statusAssembler) attachOne(
	ctx context.Context,
	rec *domain.Recommendation,
) (*domain.RecommendationView, error) {
	views, err := a.attach(ctx, []*domain.Recommendation{rec})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
