package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductCatalogIntegrationTestSuite provides integration tests for the
// GORM-backed product catalog using a PostgreSQL container.
type ProductCatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *catalogrepo.GormProductCatalog
}

func (suite *ProductCatalogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&catalogrepo.ProductDTO{}))
	suite.catalog = catalogrepo.NewGormProductCatalog(db)
}

func (suite *ProductCatalogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)
}

func (suite *ProductCatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductCatalogIntegrationTestSuite) TestResolve_ExistingProduct_ReturnsInfo() {
	ctx := context.Background()

	productRef := kernel.NewUUID()
	dto := catalogrepo.ProductDTO{
		ID:        productRef.Bytes(),
		Name:      "Laptop",
		UnitPrice: decimal.RequireFromString("999.99"),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	info, err := suite.catalog.Resolve(ctx, productRef)
	suite.Require().NoError(err)
	suite.Equal("Laptop", info.Name)
	suite.Equal("999.99", info.UnitPrice.String())
}

func (suite *ProductCatalogIntegrationTestSuite) TestResolve_UnknownProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.catalog.Resolve(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ProductCatalogIntegrationTestSuite) TestResolve_InvalidRef_ReturnsError() {
	ctx := context.Background()

	_, err := suite.catalog.Resolve(ctx, kernel.UUID{})
	suite.Require().Error(err)
}

func TestProductCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductCatalogIntegrationTestSuite))
}
