package history

import (
	"encoding/json"
	"time"

	"qiming/domain/name"
	"qiming/internal/errors"
)

// Identity scopes history operations to an owner. UserID wins when both
// are set.
type Identity struct {
	SessionID string
	UserID    *int64
}

// Empty reports whether no owner is present at all.
func (id Identity) Empty() bool {
	return id.SessionID == "" && id.UserID == nil
}

// Record is one persisted generated name with its full naming context.
// Several physical records may share the logical key
// (owner, surname, first_name); reads deduplicate on it.
type Record struct {
	ID        int64      `db:"id" json:"id"`
	SessionID string     `db:"session_id" json:"sessionId"`
	UserID    *int64     `db:"user_id" json:"userId,omitempty"`
	Surname   string     `db:"surname" json:"surname"`
	Gender    string     `db:"gender" json:"gender"`
	BirthDate *time.Time `db:"birth_date" json:"birthDate,omitempty"`

	// Preferences and Sources are JSON arrays, ScoreBreakdown the JSON
	// form of the four-axis breakdown.
	Preferences    string `db:"preferences" json:"preferences"`
	Sources        string `db:"sources" json:"sources"`
	ScoreBreakdown string `db:"score_breakdown" json:"scoreBreakdown"`

	FixedChar     *string `db:"fixed_char" json:"fixedChar,omitempty"`
	FixedPosition *string `db:"fixed_position" json:"fixedPosition,omitempty"`

	FullName     string `db:"full_name" json:"fullName"`
	FirstName    string `db:"first_name" json:"firstName"`
	ScoreTotal   int    `db:"score_total" json:"scoreTotal"`
	ScoreWuxing  int    `db:"score_wuxing" json:"scoreWuxing"`
	ScoreYinlu   int    `db:"score_yinlu" json:"scoreYinlu"`
	ScoreZixing  int    `db:"score_zixing" json:"scoreZixing"`
	ScoreYuyi    int    `db:"score_yuyi" json:"scoreYuyi"`
	Grade        string `db:"grade" json:"grade"`
	Source       string `db:"source" json:"source"`
	SourceDetail string `db:"source_detail" json:"sourceDetail,omitempty"`

	IsFavorite bool    `db:"is_favorite" json:"isFavorite"`
	Notes      *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRecord builds a Record from a scored candidate and its request
// context. The candidate must carry a ScoreDetail.
func NewRecord(id Identity, input name.Input, cand name.Candidate) (*Record, error) {
	if cand.ScoreDetail == nil {
		return nil, errors.ValidationError("candidate is not scored")
	}
	prefs, err := json.Marshal(input.Preferences)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling preferences")
	}
	sources, err := json.Marshal(input.Sources)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling sources")
	}
	breakdown, err := json.Marshal(cand.ScoreDetail)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling score breakdown")
	}

	rec := &Record{
		SessionID:      id.SessionID,
		UserID:         id.UserID,
		Surname:        input.Surname,
		Gender:         string(input.Gender),
		BirthDate:      input.BirthDate,
		Preferences:    string(prefs),
		Sources:        string(sources),
		ScoreBreakdown: string(breakdown),
		FullName:       cand.FullName,
		FirstName:      cand.FirstName,
		ScoreTotal:     cand.ScoreDetail.Total,
		ScoreWuxing:    cand.ScoreDetail.Breakdown.Wuxing.Score,
		ScoreYinlu:     cand.ScoreDetail.Breakdown.Yinlu.Score,
		ScoreZixing:    cand.ScoreDetail.Breakdown.Zixing.Score,
		ScoreYuyi:      cand.ScoreDetail.Breakdown.Yuyi.Score,
		Grade:          cand.ScoreDetail.Grade,
		Source:         string(cand.Source),
		SourceDetail:   cand.SourceDetail,
	}
	if input.FixedChar != nil {
		c := input.FixedChar.Char
		p := string(input.FixedChar.Position)
		rec.FixedChar = &c
		rec.FixedPosition = &p
	}
	return rec, nil
}

// ListOptions bound a history page.
type ListOptions struct {
	Limit         int
	Offset        int
	OnlyFavorites bool
}

// Stats summarizes the deduplicated history of one owner.
type Stats struct {
	Total       int            `json:"total"`
	Favorites   int            `json:"favorites"`
	AvgScore    float64        `json:"avgScore"`
	BySources   map[string]int `json:"bySources"`
	MinScore    float64        `json:"minScore"`
	MaxScore    float64        `json:"maxScore"`
	MedianScore float64        `json:"medianScore"`
}
