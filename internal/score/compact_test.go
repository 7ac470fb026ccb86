package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/game"
)

type compactTest struct {
	inputs  []game.Input
	compact []InputsCompact
}

var compactTests = []compactTest{
	{[]game.Input{}, []InputsCompact{}},
	{
		[]game.Input{{Zone: 0, Time: 100}, {Zone: 3, Time: 200}},
		[]InputsCompact{
			{Zone: 0, Times: []time.Duration{100}},
			{Zone: 1, Times: []time.Duration{}},
			{Zone: 2, Times: []time.Duration{}},
			{Zone: 3, Times: []time.Duration{200}},
		},
	},
	{
		[]game.Input{{Zone: 1, Time: 2}, {Zone: 1, Time: 1}},
		[]InputsCompact{
			{Zone: 0, Times: []time.Duration{}},
			{Zone: 1, Times: []time.Duration{2, 1}},
		},
	},
	{
		[]game.Input{{Zone: 0, Time: 7}},
		[]InputsCompact{
			{Zone: 0, Times: []time.Duration{7}},
		},
	},
}

func compactEqual(p, q []InputsCompact) bool {
	if len(p) != len(q) {
		return false
	}
	for i := 0; i < len(p); i++ {
		pi, qi := p[i], q[i]
		if pi.Zone != qi.Zone {
			return false
		}
		if len(pi.Times) != len(qi.Times) {
			return false
		}
		for j := 0; j < len(pi.Times); j++ {
			if pi.Times[j] != qi.Times[j] {
				return false
			}
		}
	}
	return true
}

func TestCompactInputs(t *testing.T) {
	for _, test := range compactTests {
		out := compactInputs(test.inputs)
		if !compactEqual(out, test.compact) {
			t.Log("out     ", out)
			t.Log("expected", test.compact)
			t.Fail()
		}
	}
}

func TestUncompactInputs(t *testing.T) {
	equal := func(p, q []game.Input) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] != q[i] {
				return false
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := uncompactInputs(test.compact)
		if !equal(out, test.inputs) {
			t.Log("in      ", test.compact)
			t.Log("out     ", out)
			t.Log("expected", test.inputs)
			t.Fail()
		}
	}
}

func TestSortInputs(t *testing.T) {
	inputs := []game.Input{{Zone: 2, Time: 30}, {Zone: 1, Time: 10}, {Zone: 0, Time: 30}}
	SortInputs(inputs)
	expected := []game.Input{{Zone: 1, Time: 10}, {Zone: 0, Time: 30}, {Zone: 2, Time: 30}}
	for i := range expected {
		if inputs[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, inputs)
		}
	}
}
