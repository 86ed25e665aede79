package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/botpanel/botpanel/internal/bot"
)

const (
	maxDice  = 100
	maxSides = 1000
)

// ErrInvalidDice is returned for a malformed or out of range NdM argument.
var ErrInvalidDice = errors.New("invalid dice, use NdM like 2d6")

// Roll rolls NdM dice, 1d6 without argument.
func Roll(ctx context.Context, inv *bot.Invocation) error {
	dice := "1d6"
	if len(inv.Args) > 0 {
		dice = inv.Args[0]
	}

	n, m, err := parseDice(dice)
	if err != nil {
		return err
	}

	rolls := make([]string, n)
	total := 0

	for i := range n {
		v := rand.IntN(m) + 1 //nolint:gosec
		total += v
		rolls[i] = strconv.Itoa(v)
	}

	if n == 1 {
		return inv.Reply(ctx, fmt.Sprintf("🎲 %s: **%d**", dice, total))
	}

	return inv.Reply(ctx, fmt.Sprintf("🎲 %s: %s = **%d**", dice, strings.Join(rolls, " + "), total))
}

func parseDice(dice string) (int, int, error) {
	left, right, ok := strings.Cut(strings.ToLower(dice), "d")
	if !ok {
		return 0, 0, ErrInvalidDice
	}

	n := 1
	if left != "" {
		v, err := strconv.Atoi(left)
		if err != nil {
			return 0, 0, ErrInvalidDice
		}

		n = v
	}

	m, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, ErrInvalidDice
	}

	if n < 1 || n > maxDice || m < 2 || m > maxSides {
		return 0, 0, fmt.Errorf("%w: at most %dd%d", ErrInvalidDice, maxDice, maxSides)
	}

	return n, m, nil
}
