package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/botpanel/botpanel/internal/bot"
	"github.com/botpanel/botpanel/internal/platform"
)

const defaultCurrency = "usd"

var (
	// ErrMissingCoin is returned when crypto is called without a coin id.
	ErrMissingCoin = errors.New("missing coin, use crypto <coin> [currency]")
	// ErrUnknownCoin is returned when the price API has no quote for the pair.
	ErrUnknownCoin = errors.New("no price for coin")
)

// CryptoHandler looks coin prices up from a CoinGecko compatible API.
type CryptoHandler struct {
	BaseURL string
	Client  *http.Client
}

// Handle implements the crypto command.
func (h *CryptoHandler) Handle(ctx context.Context, inv *bot.Invocation) error {
	if len(inv.Args) == 0 {
		return ErrMissingCoin
	}

	coin := strings.ToLower(inv.Args[0])
	currency := defaultCurrency

	if len(inv.Args) > 1 {
		currency = strings.ToLower(inv.Args[1])
	}

	price, err := h.Price(ctx, coin, currency)
	if err != nil {
		return err
	}

	return inv.ReplyEmbed(ctx, &platform.Embed{
		Title:       strings.ToUpper(coin[:1]) + coin[1:],
		Description: fmt.Sprintf("%.8g %s", price, strings.ToUpper(currency)),
		Color:       embedColor,
		Footer:      "Data provided by CoinGecko",
	})
}

// Price fetches the current price of coin in currency.
func (h *CryptoHandler) Price(ctx context.Context, coin, currency string) (float64, error) {
	q := url.Values{}
	q.Set("ids", coin)
	q.Set("vs_currencies", currency)

	endpoint := strings.TrimRight(h.BaseURL, "/") + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create price request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price api returned status %d", resp.StatusCode)
	}

	var quotes map[string]map[string]float64
	if err = json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return 0, fmt.Errorf("failed to decode price response: %w", err)
	}

	price, ok := quotes[coin][currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s in %s", ErrUnknownCoin, coin, currency)
	}

	return price, nil
}
