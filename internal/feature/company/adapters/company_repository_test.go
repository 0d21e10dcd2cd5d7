package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/company/usecase"
	"jobboard_backend/internal/platform/db"
	"jobboard_backend/internal/platform/mongodb/mongotest"
)

// repositories はGORM実装と（MONGODB_TEST_URIが設定されていれば）MongoDB実装を返します。
func repositories(t *testing.T) map[string]func(t *testing.T) usecase.CompanyRepository {
	return map[string]func(t *testing.T) usecase.CompanyRepository{
		"gorm": func(t *testing.T) usecase.CompanyRepository {
			gdb, err := db.OpenSQLite(":memory:")
			require.NoError(t, err)
			require.NoError(t, db.Migrate(gdb, &entity.Company{}))
			return NewCompanyGorm(gdb)
		},
		"mongo": func(t *testing.T) usecase.CompanyRepository {
			return NewCompanyMongo(mongotest.Database(t))
		},
	}
}

func sampleCompany(id, email string) *entity.Company {
	return &entity.Company{
		ID:        id,
		Name:      "Acme",
		Email:     email,
		Password:  "$2a$10$hash",
		Image:     "https://files/logos/acme.png",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// TestCompanyRepository_CreateAndFind は企業の作成と各種検索を検証します。
func TestCompanyRepository_CreateAndFind(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Create(ctx, sampleCompany("c1", "hr@acme.io")))

			byEmail, err := repo.FindByEmail(ctx, "hr@acme.io")
			require.NoError(t, err)
			assert.Equal(t, "c1", byEmail.ID)
			assert.Equal(t, "$2a$10$hash", byEmail.Password)
			assert.True(t, byEmail.CreatedAt.Equal(sampleCompany("c1", "").CreatedAt))

			byID, err := repo.FindByID(ctx, "c1")
			require.NoError(t, err)
			assert.Equal(t, "Acme", byID.Name)
			assert.Equal(t, "https://files/logos/acme.png", byID.Image)

			_, err = repo.FindByID(ctx, "missing")
			assert.ErrorIs(t, err, usecase.ErrCompanyNotFound)

			_, err = repo.FindByEmail(ctx, "nobody@acme.io")
			assert.ErrorIs(t, err, usecase.ErrCompanyNotFound)
		})
	}
}

// TestCompanyRepository_DuplicateEmail は同じメールアドレスで二重登録できないことを検証します。
func TestCompanyRepository_DuplicateEmail(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Create(ctx, sampleCompany("c1", "hr@acme.io")))

			err := repo.Create(ctx, sampleCompany("c2", "hr@acme.io"))
			assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

			_, err = repo.FindByID(ctx, "c2")
			assert.ErrorIs(t, err, usecase.ErrCompanyNotFound)
		})
	}
}

// TestCompanyRepository_FindByIDs は存在するIDの企業のみが返されることを検証します。
func TestCompanyRepository_FindByIDs(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Create(ctx, sampleCompany("c1", "a@acme.io")))
			require.NoError(t, repo.Create(ctx, sampleCompany("c2", "b@acme.io")))

			got, err := repo.FindByIDs(ctx, []string{"c1", "c2", "c3"})
			require.NoError(t, err)
			ids := []string{}
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

			empty, err := repo.FindByIDs(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}
