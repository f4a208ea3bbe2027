package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSensorValid(t *testing.T) {
	assert.True(t, SensorTemperature.Valid())
	assert.True(t, SensorHumidity.Valid())
	assert.False(t, Sensor("pressure").Valid())
	assert.False(t, Sensor("").Valid())
}

func TestExtremumKindValid(t *testing.T) {
	assert.True(t, ExtremumMin.Valid())
	assert.True(t, ExtremumMax.Valid())
	assert.False(t, ExtremumKind("median").Valid())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 21.46, Round2(21.4567))
	assert.Equal(t, 21.45, Round2(21.454))
	assert.Equal(t, -3.13, Round2(-3.125))
	assert.Equal(t, 48.12, Round2(48.123))
	assert.Equal(t, 50.0, Round2(50))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 20.1, Round1(20.05))
	assert.Equal(t, 20.0, Round1(20.04))
	assert.Equal(t, -5.5, Round1(-5.45))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2026, 8, 29, 14, 35, 12, 987, loc)

	out := StartOfDay(in)

	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, loc), out)
	assert.Equal(t, loc, out.Location())
}

func TestDailyAggregateEmpty(t *testing.T) {
	v := 21.5

	assert.True(t, (&DailyAggregate{}).Empty())
	assert.False(t, (&DailyAggregate{TemperatureMin: &v}).Empty())
	assert.False(t, (&DailyAggregate{TemperatureMax: &v}).Empty())
	assert.False(t, (&DailyAggregate{HumidityMin: &v}).Empty())
	assert.False(t, (&DailyAggregate{HumidityMax: &v}).Empty())
}
