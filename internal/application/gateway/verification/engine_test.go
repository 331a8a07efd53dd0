package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lldgw/internal/shared/logger"
)

type probe struct {
	remark string
	price  string
	toAddr string
}

type fakeIndex struct {
	probes  []probe
	answers map[string]*Match
	errs    map[string]error
}

func (f *fakeIndex) VerifyPurchase(ctx context.Context, remark, pricePlancks, toAddress string) (*Match, error) {
	f.probes = append(f.probes, probe{remark: remark, price: pricePlancks, toAddr: toAddress})
	if err, ok := f.errs[remark]; ok {
		return nil, err
	}
	if m, ok := f.answers[remark]; ok {
		return m, nil
	}
	return &Match{}, nil
}

func TestRemarkCandidatesOrder(t *testing.T) {
	got := RemarkCandidates(742)

	want := []string{
		"Order #742",
		"742",
		"order #742",
		"ORDER #742",
		"Order 742",
		"Order#742",
	}
	assert.Equal(t, want, got)
}

func TestVerifyFirstVariantMatches(t *testing.T) {
	index := &fakeIndex{
		answers: map[string]*Match{
			"Order #10": {Paid: true, TxHash: "0xdeadbeef"},
		},
	}
	engine := NewEngine(index, logger.NewNop())

	res := engine.Verify(context.Background(), 10, "addr", "5000000000000")

	assert.True(t, res.Matched)
	assert.Equal(t, "0xdeadbeef", res.TxHash)
	assert.Equal(t, "Order #10", res.Remark)
	assert.Equal(t, 1, res.Attempts)
	assert.Len(t, index.probes, 1, "must short-circuit on first match")
}

func TestVerifyThirdVariantMatches(t *testing.T) {
	index := &fakeIndex{
		answers: map[string]*Match{
			"order #10": {Paid: true, TxHash: "0xabc"},
		},
	}
	engine := NewEngine(index, logger.NewNop())

	res := engine.Verify(context.Background(), 10, "addr", "5000000000000")

	assert.True(t, res.Matched)
	assert.Equal(t, "order #10", res.Remark)
	assert.Equal(t, 3, res.Attempts)

	require.Len(t, index.probes, 3)
	assert.Equal(t, "Order #10", index.probes[0].remark)
	assert.Equal(t, "10", index.probes[1].remark)
	assert.Equal(t, "order #10", index.probes[2].remark)
}

func TestVerifyNoMatchExhaustsAllVariants(t *testing.T) {
	index := &fakeIndex{}
	engine := NewEngine(index, logger.NewNop())

	res := engine.Verify(context.Background(), 99, "addr", "1")

	assert.False(t, res.Matched)
	assert.Empty(t, res.TxHash)
	assert.Equal(t, 6, res.Attempts)
	assert.Len(t, index.probes, 6)
}

func TestVerifyProbeErrorSkipsToNextVariant(t *testing.T) {
	index := &fakeIndex{
		errs: map[string]error{
			"Order #5": errors.New("timeout"),
			"5":        errors.New("timeout"),
		},
		answers: map[string]*Match{
			"Order#5": {Paid: true, TxHash: "0xabc"},
		},
	}
	engine := NewEngine(index, logger.NewNop())

	res := engine.Verify(context.Background(), 5, "addr", "1")

	assert.True(t, res.Matched)
	assert.Equal(t, "Order#5", res.Remark)
	assert.Equal(t, 6, res.Attempts)
}

func TestVerifyPassesPriceAndAddressUnchanged(t *testing.T) {
	index := &fakeIndex{}
	engine := NewEngine(index, logger.NewNop())

	engine.Verify(context.Background(), 7, "merchant-addr", "900900900900901")

	require.NotEmpty(t, index.probes)
	for _, p := range index.probes {
		assert.Equal(t, "900900900900901", p.price)
		assert.Equal(t, "merchant-addr", p.toAddr)
	}
}
