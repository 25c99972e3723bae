package builtins

import (
	"context"
	"testing"
	"time"

	"quantra/internal/domain"
)

func bar(high, low, close float64) domain.Bar {
	return domain.Bar{
		Symbol: "WDO", Timestamp: time.Now(),
		Open: close, High: high, Low: low, Close: close,
		Volume: 100,
	}
}

func TestBreakoutNeedsFullWindow(t *testing.T) {
	ctx := context.Background()
	s := NewBreakout(3, 20, 40, 0.5)
	s.Init(ctx)

	for i := 0; i < 3; i++ {
		intent, err := s.OnBar(ctx, bar(5510, 5490, 5600))
		if err != nil {
			t.Fatalf("OnBar: %v", err)
		}
		if intent != nil {
			t.Fatalf("signal on bar %d before window filled: %+v", i, intent)
		}
	}
}

func TestBreakoutLongSignal(t *testing.T) {
	ctx := context.Background()
	s := NewBreakout(2, 20, 40, 0.5)
	s.Init(ctx)

	s.OnBar(ctx, bar(5510, 5490, 5500))
	s.OnBar(ctx, bar(5512, 5492, 5505))

	intent, err := s.OnBar(ctx, bar(5520, 5505, 5515))
	if err != nil {
		t.Fatalf("OnBar: %v", err)
	}
	if intent == nil || intent.Side != domain.SideLong {
		t.Fatalf("intent = %+v, want LONG breakout above 5512", intent)
	}
	if intent.RefPrice != 5515 || intent.StopPrice != 5505 || intent.TakePrice != 5535 {
		t.Errorf("targets = ref %v stop %v take %v, want 5515/5505/5535",
			intent.RefPrice, intent.StopPrice, intent.TakePrice)
	}
}

func TestBreakoutShortSignal(t *testing.T) {
	ctx := context.Background()
	s := NewBreakout(2, 20, 40, 0.5)
	s.Init(ctx)

	s.OnBar(ctx, bar(5510, 5490, 5500))
	s.OnBar(ctx, bar(5512, 5492, 5505))

	intent, err := s.OnBar(ctx, bar(5495, 5485, 5488))
	if err != nil {
		t.Fatalf("OnBar: %v", err)
	}
	if intent == nil || intent.Side != domain.SideShort {
		t.Fatalf("intent = %+v, want SHORT breakdown below 5490", intent)
	}
	if intent.StopPrice != 5498 || intent.TakePrice != 5468 {
		t.Errorf("targets = stop %v take %v, want 5498/5468", intent.StopPrice, intent.TakePrice)
	}
}

func TestBreakoutInsideChannelIsQuiet(t *testing.T) {
	ctx := context.Background()
	s := NewBreakout(2, 20, 40, 0.5)
	s.Init(ctx)

	s.OnBar(ctx, bar(5510, 5490, 5500))
	s.OnBar(ctx, bar(5512, 5492, 5505))

	intent, err := s.OnBar(ctx, bar(5510, 5495, 5502))
	if err != nil {
		t.Fatalf("OnBar: %v", err)
	}
	if intent != nil {
		t.Errorf("intent = %+v, want nil inside the channel", intent)
	}
}
