package app

import (
	"context"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"

	"qiming/domain/history"
	"qiming/internal/errors"
	"qiming/internal/logging"
	"qiming/ports"
)

const defaultPageSize = 20

// HistoryService serves the deduplicated generation history of one owner.
type HistoryService struct {
	names  ports.NameRepository
	logger *logging.Logger
}

func NewHistoryService(names ports.NameRepository, logger *logging.Logger) *HistoryService {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &HistoryService{names: names, logger: logger}
}

// Page is one history listing with its pagination envelope.
type Page struct {
	Records    []history.Record `json:"records"`
	Stats      *history.Stats   `json:"stats"`
	Pagination Pagination       `json:"pagination"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// List returns one page of deduplicated history plus owner stats.
func (s *HistoryService) List(ctx context.Context, id history.Identity, opts history.ListOptions) (*Page, error) {
	if id.Empty() {
		return nil, errors.ValidationError("missing session or user identity")
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	records, total, err := s.names.List(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	st, err := s.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Page{
		Records:    records,
		Stats:      st,
		Pagination: Pagination{Limit: opts.Limit, Offset: opts.Offset, Total: total},
	}, nil
}

// Stats aggregates the deduplicated view and adds a score distribution
// summary.
func (s *HistoryService) Stats(ctx context.Context, id history.Identity) (*history.Stats, error) {
	st, err := s.names.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Total == 0 {
		return st, nil
	}

	// Distribution runs over every visible score.
	records, _, err := s.names.List(ctx, id, history.ListOptions{Limit: st.Total})
	if err != nil {
		return nil, err
	}
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		scores = append(scores, float64(r.ScoreTotal))
	}
	if len(scores) > 0 {
		if v, err := stats.Min(scores); err == nil {
			st.MinScore = v
		}
		if v, err := stats.Max(scores); err == nil {
			st.MaxScore = v
		}
		if v, err := stats.Median(scores); err == nil {
			st.MedianScore = v
		}
	}
	return st, nil
}

// ToggleFavorite flips the favorite flag of a whole logical name group.
func (s *HistoryService) ToggleFavorite(ctx context.Context, recordID int64, id history.Identity) (bool, error) {
	if id.Empty() {
		return false, errors.ValidationError("missing session or user identity")
	}
	return s.names.ToggleFavorite(ctx, recordID, id)
}

// Annotate stores a free-text note on a record.
func (s *HistoryService) Annotate(ctx context.Context, recordID int64, note string, id history.Identity) error {
	if id.Empty() {
		return errors.ValidationError("missing session or user identity")
	}
	return s.names.Annotate(ctx, recordID, note, id)
}

// Delete removes a whole logical name group.
func (s *HistoryService) Delete(ctx context.Context, recordID int64, id history.Identity) error {
	if id.Empty() {
		return errors.ValidationError("missing session or user identity")
	}
	return s.names.Delete(ctx, recordID, id)
}

// Export renders the full deduplicated history as an xlsx workbook.
func (s *HistoryService) Export(ctx context.Context, id history.Identity) (*excelize.File, error) {
	if id.Empty() {
		return nil, errors.ValidationError("missing session or user identity")
	}
	st, err := s.names.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	limit := st.Total
	if limit == 0 {
		limit = 1
	}
	records, _, err := s.names.List(ctx, id, history.ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	headers := []string{"姓名", "名", "评分", "等级", "来源", "收藏", "生成时间"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "building export header")
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, errors.Wrap(err, "writing export header")
		}
	}
	for row, r := range records {
		favorite := ""
		if r.IsFavorite {
			favorite = "是"
		}
		values := []interface{}{
			r.FullName, r.FirstName, r.ScoreTotal, r.Grade, r.Source,
			favorite, r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, errors.Wrap(err, "building export cell")
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, errors.Wrapf(err, "writing export row %d", row+1)
			}
		}
	}
	return f, nil
}
