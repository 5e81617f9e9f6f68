package app

import (
	"fmt"

	"github.com/allisson/recommendations/internal/database"
	recommendationHTTP "github.com/allisson/recommendations/internal/recommendation/http"
	recommendationRepository "github.com/allisson/recommendations/internal/recommendation/repository"
	recommendationUseCase "github.com/allisson/recommendations/internal/recommendation/usecase"
)

// RecommendationRepository returns the recommendation repository based on database driver.
func (c *Container) RecommendationRepository() (recommendationUseCase.RecommendationRepository, error) {
	var err error
	c.recommendationRepositoryInit.Do(func() {
		c.recommendationRepository, err = c.initRecommendationRepository()
		if err != nil {
			c.initErrors["recommendationRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recommendationRepository"]; exists {
		return nil, storedErr
	}
	return c.recommendationRepository, nil
}

// PlatformStatusRepository returns the platform status repository based on database driver.
func (c *Container) PlatformStatusRepository() (recommendationUseCase.PlatformStatusRepository, error) {
	var err error
	c.platformStatusRepositoryInit.Do(func() {
		c.platformStatusRepository, err = c.initPlatformStatusRepository()
		if err != nil {
			c.initErrors["platformStatusRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["platformStatusRepository"]; exists {
		return nil, storedErr
	}
	return c.platformStatusRepository, nil
}

// GoalUpdateRepository returns the goal update repository based on database driver.
func (c *Container) GoalUpdateRepository() (recommendationUseCase.GoalUpdateRepository, error) {
	var err error
	c.goalUpdateRepositoryInit.Do(func() {
		c.goalUpdateRepository, err = c.initGoalUpdateRepository()
		if err != nil {
			c.initErrors["goalUpdateRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["goalUpdateRepository"]; exists {
		return nil, storedErr
	}
	return c.goalUpdateRepository, nil
}

// RecommendationUseCase returns the recommendation use case.
func (c *Container) RecommendationUseCase() (recommendationUseCase.RecommendationUseCase, error) {
	var err error
	c.recommendationUseCaseInit.Do(func() {
		c.recommendationUseCase, err = c.initRecommendationUseCase()
		if err != nil {
			c.initErrors["recommendationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recommendationUseCase"]; exists {
		return nil, storedErr
	}
	return c.recommendationUseCase, nil
}

// IngestionUseCase returns the ingestion use case.
func (c *Container) IngestionUseCase() (recommendationUseCase.IngestionUseCase, error) {
	var err error
	c.ingestionUseCaseInit.Do(func() {
		c.ingestionUseCase, err = c.initIngestionUseCase()
		if err != nil {
			c.initErrors["ingestionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ingestionUseCase"]; exists {
		return nil, storedErr
	}
	return c.ingestionUseCase, nil
}

// GoalUpdateUseCase returns the goal update use case.
func (c *Container) GoalUpdateUseCase() (recommendationUseCase.GoalUpdateUseCase, error) {
	var err error
	c.goalUpdateUseCaseInit.Do(func() {
		c.goalUpdateUseCase, err = c.initGoalUpdateUseCase()
		if err != nil {
			c.initErrors["goalUpdateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["goalUpdateUseCase"]; exists {
		return nil, storedErr
	}
	return c.goalUpdateUseCase, nil
}

// RecommendationHandler returns the recommendation HTTP handler.
func (c *Container) RecommendationHandler() (*recommendationHTTP.RecommendationHandler, error) {
	var err error
	c.recommendationHandlerInit.Do(func() {
		c.recommendationHandler, err = c.initRecommendationHandler()
		if err != nil {
			c.initErrors["recommendationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recommendationHandler"]; exists {
		return nil, storedErr
	}
	return c.recommendationHandler, nil
}

// initRecommendationRepository creates the recommendation repository based on the database driver.
func (c *Container) initRecommendationRepository() (recommendationUseCase.RecommendationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for recommendation repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return recommendationRepository.NewPostgreSQLRecommendationRepository(db), nil
	case database.DriverMySQL:
		return recommendationRepository.NewMySQLRecommendationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPlatformStatusRepository creates the platform status repository based on the database driver.
func (c *Container) initPlatformStatusRepository() (recommendationUseCase.PlatformStatusRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for platform status repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return recommendationRepository.NewPostgreSQLPlatformStatusRepository(db), nil
	case database.DriverMySQL:
		return recommendationRepository.NewMySQLPlatformStatusRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGoalUpdateRepository creates the goal update repository based on the database driver.
func (c *Container) initGoalUpdateRepository() (recommendationUseCase.GoalUpdateRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for goal update repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return recommendationRepository.NewPostgreSQLGoalUpdateRepository(db), nil
	case database.DriverMySQL:
		return recommendationRepository.NewMySQLGoalUpdateRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRecommendationUseCase creates the recommendation use case with all its dependencies.
func (c *Container) initRecommendationUseCase() (recommendationUseCase.RecommendationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for recommendation use case: %w", err)
	}

	recommendationRepo, err := c.RecommendationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation repository for recommendation use case: %w", err)
	}

	platformStatusRepo, err := c.PlatformStatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get platform status repository for recommendation use case: %w", err)
	}

	baseUseCase := recommendationUseCase.NewRecommendationUseCase(
		txManager,
		recommendationRepo,
		platformStatusRepo,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for recommendation use case: %w", err)
		}
		return recommendationUseCase.NewRecommendationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initIngestionUseCase creates the ingestion use case with all its dependencies.
func (c *Container) initIngestionUseCase() (recommendationUseCase.IngestionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for ingestion use case: %w", err)
	}

	recommendationRepo, err := c.RecommendationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation repository for ingestion use case: %w", err)
	}

	platformStatusRepo, err := c.PlatformStatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get platform status repository for ingestion use case: %w", err)
	}

	goalUpdateRepo, err := c.GoalUpdateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get goal update repository for ingestion use case: %w", err)
	}

	baseUseCase := recommendationUseCase.NewIngestionUseCase(
		txManager,
		recommendationRepo,
		platformStatusRepo,
		goalUpdateRepo,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for ingestion use case: %w", err)
		}
		return recommendationUseCase.NewIngestionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initGoalUpdateUseCase creates the goal update use case with all its dependencies.
func (c *Container) initGoalUpdateUseCase() (recommendationUseCase.GoalUpdateUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for goal update use case: %w", err)
	}

	goalUpdateRepo, err := c.GoalUpdateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get goal update repository for goal update use case: %w", err)
	}

	return recommendationUseCase.NewGoalUpdateUseCase(txManager, goalUpdateRepo), nil
}

// initRecommendationHandler creates the recommendation HTTP handler with all its dependencies.
func (c *Container) initRecommendationHandler() (*recommendationHTTP.RecommendationHandler, error) {
	useCase, err := c.RecommendationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation use case for recommendation handler: %w", err)
	}

	return recommendationHTTP.NewRecommendationHandler(useCase, c.Logger()), nil
}
