package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtthornton/tappscheck/internal/domain"
)

func TestNewViolation_DefaultsSeverityFromKind(t *testing.T) {
	v, err := domain.NewViolation("a.md", 0, domain.KindError, "documentation", "unclosed fence", "documentation", "doc-unclosed-fence", "")
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityHigh, v.Severity)
}

func TestNewViolation_RejectsInvalidFields(t *testing.T) {
	_, err := domain.NewViolation("", -1, "BAD", "c", "", "s", "", "URGENT")
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, want := range []string{"file is empty", "line -1", "unknown kind", "unknown severity", "message is empty", "rule is empty"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseKindAndSeverity(t *testing.T) {
	k, ok := domain.ParseKind(" warning ")
	assert.True(t, ok)
	assert.Equal(t, domain.KindWarning, k)
	_, ok = domain.ParseKind("info")
	assert.False(t, ok)

	s, ok := domain.ParseSeverity("low")
	assert.True(t, ok)
	assert.Equal(t, domain.SeverityLow, s)
}

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, domain.SeverityCritical.Rank(), domain.SeverityHigh.Rank())
	assert.Less(t, domain.SeverityHigh.Rank(), domain.SeverityMedium.Rank())
	assert.Less(t, domain.SeverityMedium.Rank(), domain.SeverityLow.Rank())
	assert.Less(t, domain.SeverityLow.Rank(), domain.Severity("UNKNOWN").Rank())
}

func TestProcessingViolation(t *testing.T) {
	v := domain.ProcessingViolation("a.md", errors.New("boom"))
	assert.NoError(t, v.Validate())
	assert.Equal(t, domain.KindError, v.Kind)
	assert.Equal(t, domain.CategoryProcessing, v.Category)
	assert.Equal(t, "boom", v.Message)
}

func TestRiskLevel_TextRoundTrip(t *testing.T) {
	for _, lvl := range []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh} {
		b, err := lvl.MarshalText()
		require.NoError(t, err)
		var got domain.RiskLevel
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, lvl, got)
	}
	assert.Equal(t, domain.RiskHigh, domain.MaxRisk(domain.RiskHigh, domain.RiskMedium))
	assert.Equal(t, domain.RiskMedium, domain.MaxRisk(domain.RiskLow, domain.RiskMedium))
}

func TestSizeBucket(t *testing.T) {
	assert.Equal(t, domain.BucketSmall, domain.SizeBucket(0))
	assert.Equal(t, domain.BucketMedium, domain.SizeBucket(domain.SmallFileLimit))
	assert.Equal(t, domain.BucketLarge, domain.SizeBucket(domain.MediumFileLimit))
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	for _, err := range []error{
		&domain.ValidationError{File: "a", Reason: "r", Err: cause},
		&domain.FileProcessingError{File: "a", Op: "read", Err: cause},
		&domain.AnalyticsError{Op: "load", Invariant: "checksum", Err: cause},
		&domain.ConfigurationError{Source: "x", Err: cause},
	} {
		assert.ErrorIs(t, err, cause, err.Error())
	}
	assert.Equal(t, `analytics load: invariant "checksum" failed: cause`,
		(&domain.AnalyticsError{Op: "load", Invariant: "checksum", Err: cause}).Error())
}
