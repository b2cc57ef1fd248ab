package postgres

import (
	"context"
	"testing"
	"time"

	"promodesk-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var promoterTestColumns = []string{
	"id", "organization_id", "campaign_name", "associated_campaigns", "all_campaigns",
	"status", "name", "email", "whatsapp", "instagram", "tiktok", "date_of_birth",
	"state", "photo_urls", "face_photo_url", "rejection_reason", "has_joined_group",
	"observation", "action_taken_by_uid", "action_taken_by_email", "status_changed_at",
	"created_at", "updated_at",
}

func promoterRow(rows *sqlmock.Rows, id string, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, "org-1", "Verao2026", "{}", "{Verao2026}",
		"pending", "Maria Silva", "maria@example.com", "+5511999990000", "@mariasilva", "",
		"2000-01-01", "SP", "{}", "", "", false, "", "", "", nil,
		createdAt, createdAt,
	)
}

func TestPromoterRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPromoterRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := promoterRow(sqlmock.NewRows(promoterTestColumns), "p1", time.Now())
		mock.ExpectQuery("FROM promoters WHERE id = \\$1").
			WithArgs("p1").
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, domain.PromoterStatusPending, p.Status)
		assert.Equal(t, []string{"Verao2026"}, p.AllCampaigns)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM promoters WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		p, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, p)
	})
}

func TestPromoterRepository_ListPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPromoterRepository(db)
	ctx := context.Background()

	t.Run("FirstPageFullEmitsCursor", func(t *testing.T) {
		last := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(promoterTestColumns)
		promoterRow(rows, "p1", last.Add(time.Hour))
		promoterRow(rows, "p2", last)

		mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1 AND status = \\$2 ORDER BY created_at DESC, id DESC LIMIT \\$3").
			WithArgs("org-1", "pending", 2).
			WillReturnRows(rows)

		page, err := repo.ListPage(ctx, domain.PromoterFilters{
			OrganizationID: "org-1",
			Status:         domain.PromoterStatusPending,
		}, 2, "")
		assert.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.NotEmpty(t, page.NextCursor)

		createdAt, id, err := decodeCursor(page.NextCursor)
		assert.NoError(t, err)
		assert.Equal(t, "p2", id)
		assert.Equal(t, last, createdAt)
	})

	t.Run("ShortPageHasNoCursor", func(t *testing.T) {
		rows := promoterRow(sqlmock.NewRows(promoterTestColumns), "p3", time.Now())
		mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1").
			WithArgs("org-1", 2).
			WillReturnRows(rows)

		page, err := repo.ListPage(ctx, domain.PromoterFilters{OrganizationID: "org-1"}, 2, "")
		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("CursorBecomesKeysetPredicate", func(t *testing.T) {
		boundary := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		cursor := encodeCursor(boundary, "p2")

		mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1 AND \\(created_at, id\\) < \\(\\$2, \\$3\\)").
			WithArgs("org-1", boundary, "p2", 2).
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		page, err := repo.ListPage(ctx, domain.PromoterFilters{OrganizationID: "org-1"}, 2, cursor)
		assert.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("RejectedFilterCoversBothVariants", func(t *testing.T) {
		mock.ExpectQuery("FROM promoters WHERE status IN \\(\\$1, \\$2\\)").
			WithArgs("rejected", "rejected_editable", 2).
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		_, err := repo.ListPage(ctx, domain.PromoterFilters{Status: domain.PromoterStatusRejected}, 2, "")
		assert.NoError(t, err)
	})

	t.Run("CampaignFilterMatchesUnion", func(t *testing.T) {
		mock.ExpectQuery("FROM promoters WHERE state = \\$1 AND \\$2 = ANY\\(all_campaigns\\)").
			WithArgs("SP", "Verao2026", 2).
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		_, err := repo.ListPage(ctx, domain.PromoterFilters{State: "SP", Campaign: "Verao2026"}, 2, "")
		assert.NoError(t, err)
	})

	t.Run("ScopeStatesBecomeAnyClause", func(t *testing.T) {
		mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1 AND state = ANY\\(\\$2\\)").
			WithArgs("org-1", pq.Array([]string{"SP", "RJ"}), 2).
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		_, err := repo.ListPage(ctx, domain.PromoterFilters{
			OrganizationID: "org-1",
			VisibleStates:  []string{"SP", "RJ"},
		}, 2, "")
		assert.NoError(t, err)
	})

	t.Run("CampaignSubsetRestrictsPrimaryCampaign", func(t *testing.T) {
		rows := sqlmock.NewRows(promoterTestColumns)
		promoterRow(rows, "p1", time.Now().Add(time.Hour))
		promoterRow(rows, "p2", time.Now())

		mock.ExpectQuery("FROM promoters WHERE \\(state <> \\$1 OR campaign_name = ANY\\(\\$2\\)\\)").
			WithArgs("SP", pq.Array([]string{"Verao2026"}), 2).
			WillReturnRows(rows)

		page, err := repo.ListPage(ctx, domain.PromoterFilters{
			CampaignSubsets: map[string][]string{"SP": {"Verao2026"}},
		}, 2, "")
		assert.NoError(t, err)
		// The restricted query still fills the page, so the cursor chain
		// keeps advancing for subset-limited admins.
		assert.Len(t, page.Items, 2)
		assert.NotEmpty(t, page.NextCursor)
	})

	t.Run("MalformedCursorRejected", func(t *testing.T) {
		_, err := repo.ListPage(ctx, domain.PromoterFilters{}, 2, "not-base64!!!")
		assert.Error(t, err)
		assert.True(t, domain.IsFetch(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoterRepository_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPromoterRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"total", "pending", "approved", "rejected", "removed"}).
		AddRow(8, 3, 5, 0, 0)

	// The status filter is dropped: stats break the population down by status.
	mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1").
		WithArgs("org-1").
		WillReturnRows(rows)

	stats, err := repo.Stats(ctx, domain.PromoterFilters{
		OrganizationID: "org-1",
		Status:         domain.PromoterStatusPending,
	})
	assert.NoError(t, err)
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 5, stats.Approved)

	// Scope restrictions narrow the counted population the same way they
	// narrow the page query.
	restricted := sqlmock.NewRows([]string{"total", "pending", "approved", "rejected", "removed"}).
		AddRow(2, 1, 1, 0, 0)
	mock.ExpectQuery("FROM promoters WHERE organization_id = \\$1 AND state = ANY\\(\\$2\\) AND \\(state <> \\$3 OR campaign_name = ANY\\(\\$4\\)\\)").
		WithArgs("org-1", pq.Array([]string{"SP"}), "SP", pq.Array([]string{"Verao2026"})).
		WillReturnRows(restricted)

	stats, err = repo.Stats(ctx, domain.PromoterFilters{
		OrganizationID:  "org-1",
		VisibleStates:   []string{"SP"},
		CampaignSubsets: map[string][]string{"SP": {"Verao2026"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoterRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPromoterRepository(db)
	ctx := context.Background()

	p := &domain.Promoter{ID: "p1", OrganizationID: "org-1", Status: domain.PromoterStatusApproved}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE promoters SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, p))
	})

	t.Run("VanishedRowIsWriteError", func(t *testing.T) {
		mock.ExpectExec("UPDATE promoters SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, p)
		assert.True(t, domain.IsWrite(err))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPromoterRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPromoterRepository(db)
	ctx := context.Background()

	t.Run("ScopedToOrganization", func(t *testing.T) {
		rows := promoterRow(sqlmock.NewRows(promoterTestColumns), "p1", time.Now())
		mock.ExpectQuery("FROM promoters WHERE email = \\$1 AND organization_id = \\$2").
			WithArgs("maria@example.com", "org-1").
			WillReturnRows(rows)

		got, err := repo.FindByEmail(ctx, "maria@example.com", "org-1")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("CrossTenantWhenOrgEmpty", func(t *testing.T) {
		mock.ExpectQuery("FROM promoters WHERE email = \\$1 ORDER BY").
			WithArgs("maria@example.com").
			WillReturnRows(sqlmock.NewRows(promoterTestColumns))

		got, err := repo.FindByEmail(ctx, "maria@example.com", "")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	cursor := encodeCursor(at, "p42")

	createdAt, id, err := decodeCursor(cursor)
	assert.NoError(t, err)
	assert.Equal(t, at, createdAt)
	assert.Equal(t, "p42", id)

	_, _, err = decodeCursor("%%%")
	assert.Error(t, err)
}
