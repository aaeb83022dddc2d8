package kpi

import "ete-kpi/internal/model"

// QualityResult piece totals and the share of good pieces.
type QualityResult struct {
	GoodPieces        int     `json:"goodPieces"`
	Scrap             int     `json:"scrap"`
	TotalPieces       int     `json:"totalPieces"`
	QualityPercentage float64 `json:"qualityPercentage"`
}

// ComputeQuality aggregates piece and scrap totals.
//
//	goodPieces        = Σ pieceQuantity − Σ scrap
//	qualityPercentage = round2(goodPieces · 100 / totalPieces), 0 when totalPieces is 0
func ComputeQuality(events []model.Production) QualityResult {
	var pieces, scrap int
	for _, p := range events {
		pieces += p.PieceQuantity
		scrap += p.Scrap
	}

	res := QualityResult{
		GoodPieces:  pieces - scrap,
		Scrap:       scrap,
		TotalPieces: pieces,
	}
	if pieces != 0 {
		res.QualityPercentage = round2(float64(res.GoodPieces) * 100 / float64(pieces))
	}
	return res
}
