package service

import (
	"context"
	"fmt"

	"storefront/internal/menu"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Catalogue is the data behind the home page and the guest menu.
type Catalogue struct {
	Dishes     []model.Dish
	Categories []model.Category
	Sections   []menu.Section
}

// CategoryPage is a category with the dishes that belong to it.
type CategoryPage struct {
	Category model.Category
	Dishes   []model.Dish
}

// catalogueService implements CatalogueService.
type catalogueService struct {
	dishes     DishSource
	categories CategorySource
	logger     zerolog.Logger
}

// NewCatalogueService creates a new catalogue service.
func NewCatalogueService(dishes DishSource, categories CategorySource, logger zerolog.Logger) CatalogueService {
	return &catalogueService{
		dishes:     dishes,
		categories: categories,
		logger:     logger.With().Str("service", "catalogue").Logger(),
	}
}

// load fetches both lists concurrently. A dish failure fails the load; a
// category failure is logged and yields an empty list.
func (s *catalogueService) load(ctx context.Context) ([]model.Dish, []model.Category, error) {
	var (
		dishes     []model.Dish
		categories []model.Category
		g          errgroup.Group
	)

	g.Go(func() error {
		list, err := s.dishes.ListDishes(ctx)
		if err != nil {
			return fmt.Errorf("failed to get dishes: %w", err)
		}
		dishes = list
		return nil
	})

	g.Go(func() error {
		list, err := s.categories.ListCategories(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to get categories, rendering without them")
			categories = []model.Category{}
			return nil
		}
		categories = list
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalogue")
		return nil, nil, err
	}

	s.logger.Debug().
		Int("dish_count", len(dishes)).
		Int("category_count", len(categories)).
		Msg("catalogue loaded")

	return dishes, categories, nil
}

// HomePage fetches dishes and categories in parallel.
func (s *catalogueService) HomePage(ctx context.Context) (*Catalogue, error) {
	dishes, categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &Catalogue{
		Dishes:     dishes,
		Categories: categories,
		Sections:   menu.GroupByCategory(categories, dishes),
	}, nil
}

// Menu returns the guest ordering menu without hidden dishes.
func (s *catalogueService) Menu(ctx context.Context) (*Catalogue, error) {
	dishes, categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	visible := menu.Visible(dishes)
	return &Catalogue{
		Dishes:     visible,
		Categories: categories,
		Sections:   menu.GroupByCategory(categories, visible),
	}, nil
}

// Categories lists every category.
func (s *catalogueService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// CategoryDetail returns one category and its visible dishes.
func (s *catalogueService) CategoryDetail(ctx context.Context, id int) (*CategoryPage, error) {
	var (
		category *model.Category
		dishes   []model.Dish
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.categories.GetCategory(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		category = c
		return nil
	})
	g.Go(func() error {
		list, err := s.dishes.ListDishes(gctx)
		if err != nil {
			return fmt.Errorf("failed to get dishes: %w", err)
		}
		dishes = list
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("category_id", id).Msg("failed to load category page")
		return nil, err
	}

	if category == nil {
		s.logger.Debug().Int("category_id", id).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	page := &CategoryPage{Category: *category, Dishes: []model.Dish{}}
	for _, d := range menu.Visible(dishes) {
		if d.CategoryID == category.ID {
			page.Dishes = append(page.Dishes, d)
		}
	}
	return page, nil
}

// DishDetail returns one visible dish.
func (s *catalogueService) DishDetail(ctx context.Context, id int) (*model.Dish, error) {
	dish, err := s.dishes.GetDish(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("dish_id", id).Msg("failed to get dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	if dish == nil || dish.Status == model.DishStatusHidden {
		s.logger.Debug().Int("dish_id", id).Msg("dish not found")
		return nil, model.ErrDishNotFound
	}

	return dish, nil
}
