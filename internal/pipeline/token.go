package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/address"
	"github.com/sells-group/token-scout/internal/fetcher"
	"github.com/sells-group/token-scout/internal/model"
	"github.com/sells-group/token-scout/internal/monitoring"
	"github.com/sells-group/token-scout/internal/resilience"
	"github.com/sells-group/token-scout/internal/social"
)

var errNoUpstreamData = eris.New("pipeline: every metadata source failed")

// Token returns the normalized descriptor for id, or the demo descriptor
// when live data is disabled, the address is malformed, or every source fails.
func (a *Analyzer) Token(ctx context.Context, id string) (model.TokenDescriptor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.TokenDescriptor{}, ErrMissingIdentifier
	}
	log := zap.L().With(zap.String("mint", id))

	if !a.liveToken {
		return a.demoToken(log, monitoring.ReasonDemoMode, nil), nil
	}

	res := address.Validate(id)
	if !res.Valid {
		log.Info("pipeline: invalid address", zap.String("reason", res.Reason))
		return a.demoToken(log, monitoring.ReasonInvalidAddress, nil), nil
	}

	token, err := resilience.Guard(ctx, "token", func(ctx context.Context) (model.TokenDescriptor, error) {
		agg := a.fetcher.Fetch(ctx, res.Normalized)
		if agg.Empty() {
			return model.TokenDescriptor{}, errNoUpstreamData
		}
		return Normalize(agg), nil
	})
	if err != nil {
		reason := monitoring.ReasonUpstream
		if eris.Is(err, resilience.ErrPanic) {
			reason = monitoring.ReasonPanic
		}
		return a.demoToken(log, reason, err), nil
	}
	return token, nil
}

func (a *Analyzer) demoToken(log *zap.Logger, reason string, err error) model.TokenDescriptor {
	a.metrics.Fallback(ArtifactToken, reason)
	log.Info("pipeline: serving demo token", zap.String("reason", reason), zap.Error(err))
	return a.demo.Token()
}

// Normalize merges the raw source documents into a descriptor. Absent or
// wrong-typed fields become the typed defaults, never omissions.
func Normalize(agg fetcher.Aggregate) model.TokenDescriptor {
	asset := parse(agg.Helius)
	overview := parse(agg.Birdeye)
	content := asset.Get("content")

	twitter, telegram, website := social.ExtractAll(asset)

	return model.TokenDescriptor{
		Name: firstString(model.UnknownName,
			content.Get("metadata.name"),
			content.Get("json.name")),
		Symbol: firstString(model.UnknownSymbol,
			content.Get("metadata.symbol"),
			content.Get("json.symbol")),
		Description: firstString("",
			content.Get("metadata.description"),
			content.Get("json.description")),
		Image: firstString("",
			content.Get("links.image"),
			content.Get("json.image"),
			content.Get("files.0.uri")),
		Socials: model.Socials{
			Twitter:  twitter,
			Telegram: telegram,
			Website:  website,
		},
		Market: model.Market{
			Price:     nonNegative(overview.Get("price")),
			Liquidity: nonNegative(overview.Get("liquidity")),
			Volume24h: nonNegative(overview.Get("v24hUSD")),
		},
		Raw: &model.RawSources{
			Helius:  rawOrNull(agg.Helius),
			Birdeye: rawOrNull(agg.Birdeye),
		},
	}
}

func parse(doc json.RawMessage) gjson.Result {
	if len(doc) == 0 || !gjson.ValidBytes(doc) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(doc)
}

// firstString returns the first non-empty string candidate, else def.
func firstString(def string, candidates ...gjson.Result) string {
	for _, c := range candidates {
		if c.Type == gjson.String && c.Str != "" {
			return c.Str
		}
	}
	return def
}

func nonNegative(v gjson.Result) float64 {
	if v.Type != gjson.Number || v.Num < 0 {
		return 0
	}
	return v.Num
}

func rawOrNull(doc json.RawMessage) json.RawMessage {
	if len(doc) == 0 {
		return json.RawMessage("null")
	}
	return doc
}
