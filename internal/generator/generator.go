// Package generator synthesizes transaction batches with deliberately
// embedded cycles, smurfing hubs, and shell chains, for exercising the
// forensic detectors end-to-end without real data.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/fintrace/backend/internal/domain"
)

// Generator produces synthetic transaction batches seeded for
// reproducibility.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumAccounts <= 0 {
		cfg.NumAccounts = DefaultConfig().NumAccounts
	}
	if cfg.NumBackgroundTx <= 0 {
		cfg.NumBackgroundTx = DefaultConfig().NumBackgroundTx
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate synthesizes a transaction batch. It respects context
// cancellation between pattern groups.
func (g *Generator) Generate(ctx context.Context) ([]domain.Transaction, error) {
	accounts := make([]string, g.cfg.NumAccounts)
	for i := range accounts {
		accounts[i] = fmt.Sprintf("ACC_%05d", i+1)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txID := 0
	nextID := func() string {
		txID++
		return fmt.Sprintf("TX-%07d", txID)
	}

	var out []domain.Transaction
	usedAsLowActivity := make(map[string]bool)

	for i := 0; i < g.cfg.NumCycles; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		length := 3 + g.rand.Intn(3) // 3..5
		members := g.distinctAccounts(accounts, length, usedAsLowActivity)
		start := base.Add(time.Duration(g.rand.Intn(24*365)) * time.Hour)
		amount := 100 + g.rand.Float64()*900
		for j := 0; j < length; j++ {
			sender := members[j]
			receiver := members[(j+1)%length]
			out = append(out, domain.Transaction{
				ID:         nextID(),
				SenderID:   sender,
				ReceiverID: receiver,
				Amount:     amount,
				Timestamp:  start.Add(time.Duration(j) * time.Hour),
			})
		}
	}

	for i := 0; i < g.cfg.NumSmurfingHubs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hub := accounts[g.rand.Intn(len(accounts))]
		fanIn := g.rand.Intn(2) == 0
		counterparties := g.distinctAccounts(accounts, 12+g.rand.Intn(10), usedAsLowActivity)
		start := base.Add(time.Duration(g.rand.Intn(24*365)) * time.Hour)
		for j, cp := range counterparties {
			if cp == hub {
				continue
			}
			amount := 50 + g.rand.Float64()*200
			ts := start.Add(time.Duration(j) * 10 * time.Minute)
			if fanIn {
				out = append(out, domain.Transaction{ID: nextID(), SenderID: cp, ReceiverID: hub, Amount: amount, Timestamp: ts})
			} else {
				out = append(out, domain.Transaction{ID: nextID(), SenderID: hub, ReceiverID: cp, Amount: amount, Timestamp: ts})
			}
		}
	}

	for i := 0; i < g.cfg.NumShellChains; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hops := 3 + g.rand.Intn(4) // 3..6
		source := accounts[g.rand.Intn(len(accounts))]
		target := accounts[g.rand.Intn(len(accounts))]
		interior := make([]string, hops-1)
		for j := range interior {
			interior[j] = g.freshLowActivityAccount(accounts, usedAsLowActivity)
		}
		chain := append([]string{source}, interior...)
		chain = append(chain, target)

		start := base.Add(time.Duration(g.rand.Intn(24*365)) * time.Hour)
		amount := 200 + g.rand.Float64()*300
		for j := 0; j+1 < len(chain); j++ {
			out = append(out, domain.Transaction{
				ID:         nextID(),
				SenderID:   chain[j],
				ReceiverID: chain[j+1],
				Amount:     amount,
				Timestamp:  start.Add(time.Duration(j) * time.Hour),
			})
		}
	}

	for i := 0; i < g.cfg.NumBackgroundTx; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		senderIdx := g.rand.Intn(len(accounts))
		receiverIdx := g.rand.Intn(len(accounts))
		if senderIdx == receiverIdx {
			receiverIdx = (receiverIdx + 1) % len(accounts)
		}
		ts := base.Add(time.Duration(g.rand.Intn(24 * 365)) * time.Hour)
		out = append(out, domain.Transaction{
			ID:         nextID(),
			SenderID:   accounts[senderIdx],
			ReceiverID: accounts[receiverIdx],
			Amount:     10 + g.rand.Float64()*990,
			Timestamp:  ts,
		})
	}

	return out, nil
}

// distinctAccounts draws n distinct accounts, avoiding ones already
// committed to a shell chain's low-activity interior so embedded patterns
// don't collide and distort each other's transaction counts.
func (g *Generator) distinctAccounts(pool []string, n int, avoid map[string]bool) []string {
	if n > len(pool) {
		n = len(pool)
	}
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for len(out) < n {
		candidate := pool[g.rand.Intn(len(pool))]
		if seen[candidate] || avoid[candidate] {
			continue
		}
		seen[candidate] = true
		out = append(out, candidate)
	}
	return out
}

func (g *Generator) freshLowActivityAccount(pool []string, used map[string]bool) string {
	for {
		candidate := pool[g.rand.Intn(len(pool))]
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
