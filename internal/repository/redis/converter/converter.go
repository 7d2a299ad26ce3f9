package converter

import "github.com/DRSN-tech/nest-store/internal/domain"

type TallyConverter interface {
	ToArrRedisModel(entities []domain.ProductTally) []TallyRedisModel
	ToArrDomain(models []TallyRedisModel) []domain.ProductTally
}

type tallyConverter struct{}

func NewTallyConverter() TallyConverter {
	return tallyConverter{}
}

func (tallyConverter) ToArrRedisModel(entities []domain.ProductTally) []TallyRedisModel {
	res := make([]TallyRedisModel, 0, len(entities))
	for _, t := range entities {
		res = append(res, TallyRedisModel{ProductID: t.ProductID, Count: t.Count})
	}
	return res
}

func (tallyConverter) ToArrDomain(models []TallyRedisModel) []domain.ProductTally {
	res := make([]domain.ProductTally, 0, len(models))
	for _, m := range models {
		res = append(res, domain.ProductTally{ProductID: m.ProductID, Count: m.Count})
	}
	return res
}
