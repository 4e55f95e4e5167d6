// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelesstours/tourcms/internal/model"
	"github.com/timelesstours/tourcms/internal/testutil"
)

func TestTours_DefaultLanguageFallback(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.Exec(t, db, `INSERT INTO tours (id, destination, duration, price, type, image)
		VALUES (1, 'Kauai', '3 hours', NULL, 'boat', '/images/sunset.jpg')`)
	testutil.Exec(t, db, `INSERT INTO tour_i18n (tour_id, lang_code, title, short_description)
		VALUES (1, 'en', 'Sunset Cruise', 'Golden hour on the water')`)

	w := doRequest(t, newTestAPI(db), http.MethodGet, "/content/tours?lang=zh", "")
	assertStatusCode(t, w, http.StatusOK)

	tours := decodeBody[[]map[string]any](t, w)
	require.Len(t, tours, 1)
	tour := tours[0]
	assert.Equal(t, "Sunset Cruise", tour["title"])
	assert.Equal(t, "Golden hour on the water", tour["shortDescription"])
	assert.Equal(t, "Kauai", tour["destination"])

	// unresolved fields are explicit nulls
	for _, field := range []string{"fullDescription", "price"} {
		value, ok := tour[field]
		assert.True(t, ok, "%s should be present", field)
		assert.Nil(t, value, field)
	}
}

func TestTours_ExactLanguageWins(t *testing.T) {
	w := doRequest(t, newTestAPI(testutil.SeededDB(t)), http.MethodGet, "/content/tours?lang=zh", "")
	assertStatusCode(t, w, http.StatusOK)

	tours := decodeBody[[]model.Tour](t, w)
	require.NotEmpty(t, tours)
	require.Equal(t, int64(1), tours[0].ID)
	require.NotNil(t, tours[0].Title)
	assert.Equal(t, "蝠鲼浮潜之旅", *tours[0].Title)
	// the zh row is used whole, even where it lacks a field
	assert.Nil(t, tours[0].FullDescription)

	for i := 1; i < len(tours); i++ {
		assert.Less(t, tours[i-1].ID, tours[i].ID, "tours are ordered by id")
	}
}

func TestTours_Localized(t *testing.T) {
	api := newTestAPI(testutil.SeededDB(t))

	en := decodeBody[[]model.Tour](t, doRequest(t, api, http.MethodGet, "/content/tours", ""))
	es := decodeBody[[]model.Tour](t, doRequest(t, api, http.MethodGet, "/content/tours?lang=es", ""))
	require.Equal(t, len(en), len(es))

	// language-invariant fields never change with the language
	for i := range en {
		assert.Equal(t, en[i].ID, es[i].ID)
		assert.Equal(t, en[i].Destination, es[i].Destination)
		assert.Equal(t, en[i].Price, es[i].Price)
		assert.Equal(t, en[i].Image, es[i].Image)
	}
}

func TestFaqTopics_EqualPositionOrderedByID(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.Exec(t, db, `INSERT INTO faq_topics (id, title, position) VALUES (5, 'Booking', 1)`)
	testutil.Exec(t, db, `INSERT INTO faq_topics (id, title, position) VALUES (3, 'Safety', 1)`)
	testutil.Exec(t, db, `INSERT INTO faq_topics (id, title, position) VALUES (1, 'Weather', 2)`)
	testutil.Exec(t, db, `INSERT INTO faq_topics (id, title, position, is_active) VALUES (2, 'Retired', 0, 0)`)

	api := newTestAPI(db)
	for range 3 {
		w := doRequest(t, api, http.MethodGet, "/content/faq-topics", "")
		assertStatusCode(t, w, http.StatusOK)

		topics := decodeBody[[]model.FaqTopic](t, w)
		ids := make([]int64, 0, len(topics))
		for _, topic := range topics {
			ids = append(ids, topic.ID)
		}
		assert.Equal(t, []int64{3, 5, 1}, ids)
	}
}

func TestTeamMembers_InactiveNeverDelivered(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.Exec(t, db, `INSERT INTO team_members (id, name, role, position, is_active) VALUES (1, 'Kai', 'Captain', 1, 1)`)
	testutil.Exec(t, db, `INSERT INTO team_members (id, name, role, position, is_active) VALUES (2, 'Lani', 'Guide', 0, 0)`)

	api := newTestAPI(db)
	for _, target := range []string{"/content/team-members", "/content/team-members?lang=zh"} {
		w := doRequest(t, api, http.MethodGet, target, "")
		assertStatusCode(t, w, http.StatusOK)

		members := decodeBody[[]model.TeamMember](t, w)
		require.Len(t, members, 1, target)
		assert.Equal(t, "Kai", members[0].Name)
	}
}

func TestListEndpoints(t *testing.T) {
	api := newTestAPI(testutil.SeededDB(t))

	tests := []struct {
		path   string
		fields []string
	}{
		{"/content/team-members", []string{"id", "name", "role", "bio", "image", "position"}},
		{"/content/values", []string{"id", "title", "description", "icon", "position"}},
		{"/content/faq", []string{"id", "question", "answer", "position"}},
		{"/content/faq-topics", []string{"id", "title", "description", "icon", "position"}},
		{"/content/hero-slides", []string{"id", "image", "position"}},
		{"/content/navigation", []string{"key", "path", "position", "isCta", "label"}},
		{"/content/languages", []string{"code", "name"}},
		{"/content/tours", []string{"id", "destination", "duration", "price", "type", "image", "title", "shortDescription", "fullDescription"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doRequest(t, api, http.MethodGet, tt.path, "")
			assertStatusCode(t, w, http.StatusOK)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			rows := decodeBody[[]map[string]any](t, w)
			require.NotEmpty(t, rows)
			for _, row := range rows {
				assert.Len(t, row, len(tt.fields))
				for _, field := range tt.fields {
					assert.Contains(t, row, field)
				}
			}
		})
	}
}

func TestListEndpoints_ActiveFilterAndTieBreak(t *testing.T) {
	db := testutil.TestDB(t)
	// ids 5 and 3 share position 1; id 2 at position 0 is inactive where the
	// table has the flag
	for _, r := range []struct {
		id, position, active int
	}{{5, 1, 1}, {3, 1, 1}, {1, 2, 1}, {2, 0, 0}} {
		testutil.Exec(t, db, `INSERT INTO team_members (id, name, role, position, is_active) VALUES (?, 'Guide', 'Guide', ?, ?)`, r.id, r.position, r.active)
		testutil.Exec(t, db, `INSERT INTO company_values (id, title, position, is_active) VALUES (?, 'Value', ?, ?)`, r.id, r.position, r.active)
		testutil.Exec(t, db, `INSERT INTO faqs (id, question, answer, position, is_active) VALUES (?, 'Q', 'A', ?, ?)`, r.id, r.position, r.active)
		testutil.Exec(t, db, `INSERT INTO faq_topics (id, title, position, is_active) VALUES (?, 'Topic', ?, ?)`, r.id, r.position, r.active)
		testutil.Exec(t, db, `INSERT INTO hero_slides (id, image, position) VALUES (?, '/slide.jpg', ?)`, r.id, r.position)
		testutil.Exec(t, db, `INSERT INTO navigation (id, nav_key, path, position) VALUES (?, 'nav' || ?, '/', ?)`, r.id, r.id, r.position)
	}
	api := newTestAPI(db)

	tests := []struct {
		path  string
		field string
		want  []any
	}{
		{"/content/team-members", "id", []any{3.0, 5.0, 1.0}},
		{"/content/values", "id", []any{3.0, 5.0, 1.0}},
		{"/content/faq", "id", []any{3.0, 5.0, 1.0}},
		{"/content/faq-topics", "id", []any{3.0, 5.0, 1.0}},
		{"/content/hero-slides", "id", []any{2.0, 3.0, 5.0, 1.0}},
		{"/content/navigation", "key", []any{"nav2", "nav3", "nav5", "nav1"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doRequest(t, api, http.MethodGet, tt.path, "")
			assertStatusCode(t, w, http.StatusOK)

			rows := decodeBody[[]map[string]any](t, w)
			got := make([]any, 0, len(rows))
			for _, row := range rows {
				got = append(got, row[tt.field])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyListsAreArrays(t *testing.T) {
	api := newTestAPI(testutil.TestDB(t))

	for _, path := range []string{"/content/tours", "/content/faq", "/content/navigation?lang=it", "/content/languages"} {
		w := doRequest(t, api, http.MethodGet, path, "")
		assertStatusCode(t, w, http.StatusOK)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()), path)
	}
}

func TestNavigation_UnresolvedLabelIsNull(t *testing.T) {
	db := testutil.TestDB(t)
	testutil.Exec(t, db, `INSERT INTO navigation (id, nav_key, path, position, is_cta) VALUES (1, 'home', '/', 1, 0)`)
	testutil.Exec(t, db, `INSERT INTO navigation (id, nav_key, path, position, is_cta) VALUES (2, 'book_now', '/contact', 2, 1)`)
	testutil.Exec(t, db, `INSERT INTO navigation_i18n (nav_id, lang_code, label) VALUES (1, 'en', 'Home')`)
	testutil.Exec(t, db, `INSERT INTO navigation_i18n (nav_id, lang_code, label) VALUES (1, 'es', 'Inicio')`)
	testutil.Exec(t, db, `INSERT INTO navigation_i18n (nav_id, lang_code, label) VALUES (2, 'zh', '立即预订')`)

	w := doRequest(t, newTestAPI(db), http.MethodGet, "/content/navigation?lang=es", "")
	assertStatusCode(t, w, http.StatusOK)

	items := decodeBody[[]map[string]any](t, w)
	require.Len(t, items, 2)
	assert.Equal(t, "Inicio", items[0]["label"])
	assert.Equal(t, "book_now", items[1]["key"])
	assert.Equal(t, true, items[1]["isCta"])
	label, ok := items[1]["label"]
	assert.True(t, ok, "label should be present")
	assert.Nil(t, label)
}

func TestLanguages_OrderedByCode(t *testing.T) {
	w := doRequest(t, newTestAPI(testutil.SeededDB(t)), http.MethodGet, "/content/languages", "")
	assertStatusCode(t, w, http.StatusOK)

	languages := decodeBody[[]model.Language](t, w)
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"en", "es", "it", "zh"}, codes)
}
