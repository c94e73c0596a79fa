package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityInjuredOnly(t *testing.T) {
	assert.Equal(t, 3.0, DefaultSeverity(3, 0))
}

func TestSeverityFatalityWeight(t *testing.T) {
	// one more fatality raises severity by exactly the fatality weight
	assert.Equal(t, DefaultSeverity(2, 1)+DefaultFatalityWeight, DefaultSeverity(2, 2))
}

func TestSeverityZero(t *testing.T) {
	assert.Equal(t, 0.0, DefaultSeverity(0, 0))
}

func TestSeverityNegativeCountsClamp(t *testing.T) {
	assert.Equal(t, 0.0, SeverityV1(DefaultFatalityWeight, -2, -1))
	assert.Equal(t, 5.0, SeverityV1(DefaultFatalityWeight, -2, 1))
}

func TestSeverityCustomWeight(t *testing.T) {
	assert.Equal(t, 12.0, SeverityV1(10, 2, 1))
}
