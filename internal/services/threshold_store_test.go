package services_test

import (
	"net/url"
	"sync"
	"testing"

	"ProjectScoreService/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestParseThresholdParams(t *testing.T) {
	query := url.Values{
		"thresh_pre_renders":   {"4.5"},
		"thresh_post_invoices": {" 2 "},
		"thresh_mid_renders":   {"1"},
		"thresh_pre_unknown":   {"3"},
		"thresh_pre_boq":       {"abc"},
		"thresh_pre_cad_files": {"NaN"},
		"thresh_pre_contract":  {""},
		"role":                 {"Sales Lead"},
	}

	values := services.ParseThresholdParams(query)
	assert.Equal(t, map[string]float64{"renders": 4.5, "invoices": 2}, values)
}

func TestParseThresholdParamsSameFieldBothStages(t *testing.T) {
	query := url.Values{
		"thresh_post_renders": {"7"},
		"thresh_pre_renders":  {"3"},
	}

	for i := 0; i < 20; i++ {
		values := services.ParseThresholdParams(query)
		assert.Equal(t, map[string]float64{"renders": 3}, values)
	}
}

func TestApplyQueryMergesAndResets(t *testing.T) {
	store := services.NewThresholdStore()
	session := services.NewSessionID()

	got := store.ApplyQuery(session, url.Values{"thresh_pre_renders": {"5"}})
	assert.Equal(t, 5.0, got.EffectiveMin("renders", 1))

	got = store.ApplyQuery(session, url.Values{"thresh_post_invoices": {"3"}})
	assert.Equal(t, 2, got.Len())

	got = store.ApplyQuery(session, url.Values{services.ResetThresholdsParam: {"1"}})
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 1.0, got.EffectiveMin("renders", 1))
}

func TestApplyQueryResetThenSet(t *testing.T) {
	store := services.NewThresholdStore()
	session := services.NewSessionID()
	store.Set(session, map[string]float64{"boq": 9})

	got := store.ApplyQuery(session, url.Values{
		services.ResetThresholdsParam: {"true"},
		"thresh_pre_renders":          {"2"},
	})
	assert.Equal(t, map[string]float64{"renders": 2}, got.Values())
}

func TestThresholdStoreIsolatesSessions(t *testing.T) {
	store := services.NewThresholdStore()
	store.Set("a", map[string]float64{"renders": 7})

	assert.Equal(t, 0, store.Get("b").Len())

	copyA := store.Get("a").With("renders", 1)
	assert.Equal(t, 1.0, copyA.EffectiveMin("renders", 0))
	assert.Equal(t, 7.0, store.Get("a").EffectiveMin("renders", 0))
}

func TestThresholdStoreConcurrentAccess(t *testing.T) {
	store := services.NewThresholdStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Set("shared", map[string]float64{"renders": float64(n)})
			store.Get("shared")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.Get("shared").Len())
}
