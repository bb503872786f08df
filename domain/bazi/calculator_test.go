package bazi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateYearPillar(t *testing.T) {
	birth := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	report, err := Calculate(birth)
	require.NoError(t, err)

	// 2024 is a 甲辰 year.
	assert.Equal(t, "甲辰", report.Year.String())
}

func TestCalculateCountsCoverEightCharacters(t *testing.T) {
	report, err := Calculate(time.Date(1995, 3, 8, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	sum := 0
	for _, e := range Elements {
		sum += report.Counts[e]
	}
	// Four stems plus four branches, every one mapped to an element.
	assert.Equal(t, 8, sum)
}

func TestCalculateNeedsNeverEmpty(t *testing.T) {
	dates := []time.Time{
		time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 7, 21, 6, 45, 0, 0, time.UTC),
		time.Date(2024, 2, 10, 23, 59, 0, 0, time.UTC),
	}
	for _, d := range dates {
		report, err := Calculate(d)
		require.NoError(t, err)
		assert.NotEmpty(t, report.Needs, "date %s", d)
		assert.LessOrEqual(t, len(report.Needs), 5)
		for _, e := range report.Lacking {
			assert.Zero(t, report.Counts[e])
			assert.Contains(t, report.Needs, e)
		}
	}
}

func TestProducerInvertsProduces(t *testing.T) {
	for _, e := range Elements {
		assert.Equal(t, e, Produces(Producer(e)), "element %s", e)
	}
}

func TestFormatMentionsAllElements(t *testing.T) {
	report, err := Calculate(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	text := report.Format()
	assert.Contains(t, text, "八字：")
	for _, e := range Elements {
		assert.Contains(t, text, e)
	}
	assert.Contains(t, text, "建议补：")
}
