package service

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/yourorg/shorted-service/internal/model"
)

// mkSeries builds a series with one point per day, in timestamp order
func mkSeries(code string, values ...float64) model.TimeSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.TimeSeriesPoint, len(values))
	for i, v := range values {
		points[i] = model.TimeSeriesPoint{
			Timestamp:     base.AddDate(0, 0, i),
			ShortPosition: v,
		}
	}
	return model.TimeSeries{StockCode: code, Name: code + " Ltd", Points: points}
}

func linearValues(from, to float64) []float64 {
	n := int(to-from) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = from + float64(i)
	}
	return values
}

func TestComputeMoversDeterminism(t *testing.T) {
	series := []model.TimeSeries{
		mkSeries("AAA", 1, 5, 3, 8),
		mkSeries("BBB", 9, 2, 4),
		mkSeries("CCC", 6, 6, 6),
	}

	first := ComputeMovers(series, model.Period1M)
	second := ComputeMovers(series, model.Period1M)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical output")
	}
}

func TestMoversWindowingBoundary(t *testing.T) {
	// 19 points for the 1m window (N=20): fallback, last minus first
	short := mkSeries("AAA", linearValues(1, 19)...)
	result := ComputeMovers([]model.TimeSeries{short}, model.Period1M)
	if got := result.BiggestIncreases[0].Value; got != 18.0 {
		t.Fatalf("expected fallback change 18.0, got %v", got)
	}

	// Exactly 20 points: windowed averages over the same 20 points cancel
	exact := mkSeries("BBB", linearValues(1, 20)...)
	result = ComputeMovers([]model.TimeSeries{exact}, model.Period1M)
	if got := result.BiggestIncreases[0].Value; got != 0.0 {
		t.Fatalf("expected windowed change 0.0, got %v", got)
	}
}

func TestMoversVolatility(t *testing.T) {
	series := mkSeries("AAA", 2.0, 9.0, 3.0)
	result := ComputeMovers([]model.TimeSeries{series}, model.Period1M)
	if got := result.MostVolatile[0].Value; got != 7.0 {
		t.Fatalf("expected volatility 7.0, got %v", got)
	}

	// Shuffled input order must not change min/max
	shuffled := model.TimeSeries{
		StockCode: "AAA",
		Points: []model.TimeSeriesPoint{
			series.Points[1],
			series.Points[2],
			series.Points[0],
		},
	}
	result = ComputeMovers([]model.TimeSeries{shuffled}, model.Period1M)
	if got := result.MostVolatile[0].Value; got != 7.0 {
		t.Fatalf("expected volatility 7.0 regardless of order, got %v", got)
	}
}

func TestMoversSortsPointsBeforeComparing(t *testing.T) {
	ordered := mkSeries("AAA", 1.0, 4.0, 9.0)
	shuffled := model.TimeSeries{
		StockCode: "AAA",
		Points: []model.TimeSeriesPoint{
			ordered.Points[2],
			ordered.Points[0],
			ordered.Points[1],
		},
	}

	result := ComputeMovers([]model.TimeSeries{shuffled}, model.Period1M)
	// Fallback compares by timestamp: latest (9.0) minus earliest (1.0)
	if got := result.BiggestIncreases[0].Value; got != 8.0 {
		t.Fatalf("expected change 8.0 after timestamp sort, got %v", got)
	}
}

func TestMoversRanking(t *testing.T) {
	series := []model.TimeSeries{
		mkSeries("UPA", 0, 5),  // +5
		mkSeries("DWN", 3, 0),  // -3
		mkSeries("UPB", 0, 1),  // +1
	}

	result := ComputeMovers(series, model.Period1M)

	wantIncreases := []string{"UPA", "UPB", "DWN"}
	for i, code := range wantIncreases {
		if result.BiggestIncreases[i].StockCode != code {
			t.Fatalf("increases order wrong at %d: got %s, want %s", i, result.BiggestIncreases[i].StockCode, code)
		}
	}

	wantDecreases := []string{"DWN", "UPB", "UPA"}
	for i, code := range wantDecreases {
		if result.BiggestDecreases[i].StockCode != code {
			t.Fatalf("decreases order wrong at %d: got %s, want %s", i, result.BiggestDecreases[i].StockCode, code)
		}
	}
}

func TestMoversTiesKeepInputOrder(t *testing.T) {
	series := []model.TimeSeries{
		mkSeries("FST", 1, 3), // +2
		mkSeries("SND", 2, 4), // +2
	}

	result := ComputeMovers(series, model.Period1M)
	if result.BiggestIncreases[0].StockCode != "FST" || result.BiggestIncreases[1].StockCode != "SND" {
		t.Fatalf("tied series must keep input order, got %+v", result.BiggestIncreases)
	}
}

func TestMoversListsCappedAtTen(t *testing.T) {
	var series []model.TimeSeries
	for i := 0; i < 12; i++ {
		series = append(series, mkSeries(fmt.Sprintf("S%02d", i), 0, float64(i)))
	}

	result := ComputeMovers(series, model.Period1M)
	if len(result.BiggestIncreases) != 10 {
		t.Fatalf("increases must be capped at 10, got %d", len(result.BiggestIncreases))
	}
	if len(result.MostVolatile) != 10 {
		t.Fatalf("volatility must be capped at 10, got %d", len(result.MostVolatile))
	}
}

func TestMoversEmptyInput(t *testing.T) {
	result := ComputeMovers(nil, model.Period3M)
	if len(result.BiggestIncreases) != 0 || len(result.BiggestDecreases) != 0 || len(result.MostVolatile) != 0 {
		t.Fatalf("empty input must yield empty lists, got %+v", result)
	}
}

func TestMoversEmptySeriesChangeIsZero(t *testing.T) {
	series := []model.TimeSeries{{StockCode: "NIL", Name: "Nil Ltd"}}
	result := ComputeMovers(series, model.Period1Y)
	if result.BiggestIncreases[0].Value != 0 || result.MostVolatile[0].Value != 0 {
		t.Fatalf("empty series must score zero, got %+v", result)
	}
}

func TestMoversDoesNotMutateInput(t *testing.T) {
	ordered := mkSeries("AAA", 1.0, 4.0, 9.0)
	shuffled := model.TimeSeries{
		StockCode: "AAA",
		Points: []model.TimeSeriesPoint{
			ordered.Points[2],
			ordered.Points[0],
			ordered.Points[1],
		},
	}
	before := make([]model.TimeSeriesPoint, len(shuffled.Points))
	copy(before, shuffled.Points)

	ComputeMovers([]model.TimeSeries{shuffled}, model.Period1M)
	if !reflect.DeepEqual(before, shuffled.Points) {
		t.Fatal("engine must not reorder caller-owned points")
	}
}

func TestWindowForMatchesSamplingTable(t *testing.T) {
	want := map[model.Period]int{
		model.Period1M: 20,
		model.Period3M: 40,
		model.Period6M: 60,
		model.Period1Y: 10,
	}
	for period, n := range want {
		if got := WindowFor(period); got != n {
			t.Fatalf("window for %s: got %d, want %d", period, got, n)
		}
	}
}
