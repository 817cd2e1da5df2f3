package tests

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/mocks"
	"campus-storefront/storefront-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateSection(t *testing.T) {
	tests := []struct {
		name         string
		section      domain.Section
		prepareMocks func(repo *mocks.CatalogRepository, cache *mocks.GatewayCache)
		wantErr      bool
	}{
		{
			name:    "created and cache invalidated",
			section: domain.Section{Name: "  Snacks "},
			prepareMocks: func(repo *mocks.CatalogRepository, cache *mocks.GatewayCache) {
				repo.On("CreateSection", mock.Anything, mock.MatchedBy(func(s *domain.Section) bool {
					return s.Name == "Snacks"
				})).Return(nil).Once()
				cache.On("InvalidateSections", mock.Anything).Return(errors.New("redis down")).Once()
			},
		},
		{
			name:         "name required",
			section:      domain.Section{Name: "   "},
			prepareMocks: func(repo *mocks.CatalogRepository, cache *mocks.GatewayCache) {},
			wantErr:      true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewGatewayCache(t)
			testCase.prepareMocks(repo, cache)

			section := testCase.section
			err := service.NewCatalogService(repo, cache, storeCalendar).CreateSection(context.Background(), &section)

			if testCase.wantErr {
				assert.True(t, domain.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_ProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		field   string
	}{
		{name: "missing name", product: domain.Product{SectionID: 1, Price: 1}, field: "name"},
		{name: "missing section", product: domain.Product{Name: "Bolon", Price: 1}, field: "section_id"},
		{name: "negative price", product: domain.Product{Name: "Bolon", SectionID: 1, Price: -0.5}, field: "price"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			svc := service.NewCatalogService(repo, nil, storeCalendar)

			product := testCase.product
			err := svc.CreateProduct(context.Background(), &product)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, testCase.field, validation.Field)
			repo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogService_UpdateAndDeactivate(t *testing.T) {
	repo := mocks.NewCatalogRepository(t)
	svc := service.NewCatalogService(repo, nil, storeCalendar)
	product := &domain.Product{ID: 3, Name: "Bolon", SectionID: 1, Price: 2.5}

	repo.On("UpdateProduct", mock.Anything, product).Return(int64(1), nil).Once()
	repo.On("DeactivateProduct", mock.Anything, 3).Return(int64(0), nil).Once()
	repo.On("DeactivateProduct", mock.Anything, 4).Return(int64(0), assert.AnError).Once()

	found, err := svc.UpdateProduct(context.Background(), product)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.DeactivateProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.DeactivateProduct(context.Background(), 4)
	assert.True(t, domain.IsDataAccess(err))
}

func TestCatalogService_InitializeDailyStock(t *testing.T) {
	today := storeCalendar.Today()

	tests := []struct {
		name         string
		date         string
		quantity     int
		prepareMocks func(repo *mocks.CatalogRepository)
		want         int64
		wantValidErr bool
	}{
		{
			name:     "empty date means today",
			quantity: 20,
			prepareMocks: func(repo *mocks.CatalogRepository) {
				repo.On("InitializeDailyStock", mock.Anything, today, 20).Return(int64(12), nil).Once()
			},
			want: 12,
		},
		{
			name:     "explicit date",
			date:     "2026-10-17",
			quantity: 0,
			prepareMocks: func(repo *mocks.CatalogRepository) {
				repo.On("InitializeDailyStock", mock.Anything, "2026-10-17", 0).Return(int64(0), nil).Once()
			},
			want: 0,
		},
		{
			name:         "malformed date",
			date:         "tomorrow",
			quantity:     20,
			prepareMocks: func(repo *mocks.CatalogRepository) {},
			wantValidErr: true,
		},
		{
			name:         "negative quantity",
			quantity:     -1,
			prepareMocks: func(repo *mocks.CatalogRepository) {},
			wantValidErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			testCase.prepareMocks(repo)

			got, err := service.NewCatalogService(repo, nil, storeCalendar).InitializeDailyStock(context.Background(), testCase.date, testCase.quantity)

			if testCase.wantValidErr {
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestProfileService(t *testing.T) {
	repo := mocks.NewProfileRepository(t)
	svc := service.NewProfileService(repo)

	repo.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p domain.Profile) bool {
		return p.FirstName == "Ana" && p.Phone == "0991234567"
	})).Return(nil).Once()
	repo.On("GetProfile", mock.Anything, "user-1").Return(domain.Profile{}, false, assert.AnError).Once()

	assert.NoError(t, svc.UpdateProfile(context.Background(), domain.Profile{UserID: "user-1", FirstName: " Ana ", Phone: " 0991234567"}))
	assert.True(t, domain.IsValidation(svc.UpdateProfile(context.Background(), domain.Profile{FirstName: "Ana"})))

	_, _, err := svc.GetProfile(context.Background(), "user-1")
	assert.True(t, domain.IsDataAccess(err))
}

func TestImageService_Upload(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		contentType  string
		prepareMocks func(store *mocks.ImageStore, repo *mocks.CatalogRepository)
		wantKeyEnd   string
		wantValidErr bool
		wantErr      bool
	}{
		{
			name:        "stored and linked to product",
			filename:    "bolon de verde.png",
			contentType: "image/png",
			prepareMocks: func(store *mocks.ImageStore, repo *mocks.CatalogRepository) {
				store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "products/producto_3/") && strings.HasSuffix(key, "_bolon_de_verde.png")
				}), "image/png", mock.Anything).Return("https://cdn/menu/x.png", nil).Once()
				repo.On("UpdateProductImage", mock.Anything, 3, "https://cdn/menu/x.png").Return(nil).Once()
			},
			wantKeyEnd: "_bolon_de_verde.png",
		},
		{
			name:         "unsupported type",
			filename:     "menu.pdf",
			contentType:  "application/pdf",
			prepareMocks: func(store *mocks.ImageStore, repo *mocks.CatalogRepository) {},
			wantValidErr: true,
		},
		{
			name:        "storage failure",
			filename:    "a.jpg",
			contentType: "image/jpeg",
			prepareMocks: func(store *mocks.ImageStore, repo *mocks.CatalogRepository) {
				store.On("Upload", mock.Anything, mock.Anything, "image/jpeg", mock.Anything).Return("", assert.AnError).Once()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := mocks.NewImageStore(t)
			repo := mocks.NewCatalogRepository(t)
			testCase.prepareMocks(store, repo)

			image, err := service.NewImageService(store, repo).
				Upload(context.Background(), 3, testCase.filename, testCase.contentType, strings.NewReader("data"))

			switch {
			case testCase.wantValidErr:
				assert.True(t, domain.IsValidation(err))
			case testCase.wantErr:
				assert.True(t, domain.IsDataAccess(err))
				repo.AssertNotCalled(t, "UpdateProductImage", mock.Anything, mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				assert.True(t, strings.HasSuffix(image.Key, testCase.wantKeyEnd))
				assert.Equal(t, "https://cdn/menu/x.png", image.URL)
			}
		})
	}
}

func TestImageService_ListAndDelete(t *testing.T) {
	store := mocks.NewImageStore(t)
	svc := service.NewImageService(store, mocks.NewCatalogRepository(t))

	store.On("List", mock.Anything, "products/producto_3/").Return([]domain.ProductImage{{Key: "products/producto_3/a.png"}}, nil).Once()
	store.On("Delete", mock.Anything, "products/producto_3/a.png").Return(nil).Once()

	images, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	assert.NoError(t, svc.Delete(context.Background(), 3, "products/producto_3/a.png"))

	// keys of another product are refused
	err = svc.Delete(context.Background(), 3, "products/producto_4/a.png")
	assert.True(t, domain.IsValidation(err))
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "https://store.example.com"}

	code, err := gen.Generate("FAC-000042")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(code))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = gen.Generate("")
	assert.Error(t, err)
}
