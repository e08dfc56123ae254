package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAmount(t *testing.T) {
	assert.Equal(t, int64(100000), PlanAmount("gold-monthly"))
	assert.Equal(t, int64(40000), PlanAmount("silver-monthly"))
	assert.Equal(t, int64(1000000), PlanAmount("gold-yearly"))
	assert.Equal(t, int64(0), PlanAmount("platinum-weekly"))
	assert.Equal(t, int64(0), PlanAmount(""))
}
