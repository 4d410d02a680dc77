package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamUniqueID(t *testing.T) {
	assert.Equal(t, "vehicles", Param{Key: "vehicles", Val: 1}.UniqueID())
	assert.Equal(t, "JT1.odometer", Param{Vehicle: "JT1", Key: "odometer", Val: 1.0}.UniqueID())
}

func TestCache(t *testing.T) {
	c := NewCache()

	p := Param{Vehicle: "JT1", Key: "odometer", Val: 1000.0}
	c.Add(p.UniqueID(), p)

	assert.Equal(t, p, c.Get("JT1.odometer"))
	assert.Equal(t, Param{}, c.Get("missing"))
	assert.Len(t, c.All(), 1)

	// latest value wins
	p.Val = 2000.0
	c.Add(p.UniqueID(), p)
	assert.Equal(t, 2000.0, c.Get("JT1.odometer").Val)
	assert.Len(t, c.All(), 1)
}

func TestCacheState(t *testing.T) {
	c := NewCache()

	for _, p := range []Param{
		{Vehicle: "JT1", Key: "odometer", Val: 1000.0},
		{Vehicle: "JT1", Key: "vin", Val: "JT1"},
		{Vehicle: "JT2", Key: "odometer", Val: 500.0},
		{Key: "vehicles", Val: 2},
		{Key: "error", Val: ""},
	} {
		c.Add(p.UniqueID(), p)
	}

	state := c.State()
	assert.Equal(t, 2, state["vehicles"])
	assert.Equal(t, "", state["error"])

	jt1, ok := state["JT1"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1000.0, jt1["odometer"])
	assert.Equal(t, "JT1", jt1["vin"])

	jt2, ok := state["JT2"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 500.0, jt2["odometer"])
}

func TestTee(t *testing.T) {
	var tee Tee
	out1 := tee.Attach()
	out2 := tee.Attach()

	in := make(chan Param)
	go tee.Run(in)

	p := Param{Key: "updated", Val: time.Now()}
	in <- p

	assert.Equal(t, p, <-out1)
	assert.Equal(t, p, <-out2)
}
