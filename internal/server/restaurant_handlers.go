package server

import (
	"errors"
	"sort"

	"forkful/internal/middleware"
	"forkful/internal/models"
	"forkful/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 9

	feedSize = 10
	topSize  = 10

	listDescriptionLength = 50
	topDescriptionLength  = 100
	feedDescriptionLength = 200
)

// GetRestaurants handles GET /api/restaurants?categoryId=&page=&limit=
func (s *Server) GetRestaurants(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categoryID := uint(c.QueryInt("categoryId", 0))
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	offset := pagination.Offset(limit, page)

	var (
		categories  []models.Category
		restaurants []models.Restaurant
		total       int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		restaurants, total, err = s.restaurantRepo.ListPage(gctx, categoryID, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	viewer, err := s.viewer(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	var favorited, liked map[uint]struct{}
	if viewer != nil {
		favorited = restaurantIDSet(viewer.FavoritedRestaurants)
		liked = restaurantIDSet(viewer.LikedRestaurants)
	}

	items := make([]models.RestaurantListItem, 0, len(restaurants))
	for _, r := range restaurants {
		r.Description = truncate(r.Description, listDescriptionLength)
		_, isFavorited := favorited[r.ID]
		_, isLiked := liked[r.ID]
		items = append(items, models.RestaurantListItem{
			Restaurant:  r,
			IsFavorited: isFavorited,
			IsLiked:     isLiked,
		})
	}

	resp := fiber.Map{
		"restaurants": items,
		"categories":  categories,
		"category_id": categoryID,
		"pagination":  pagination.New(limit, page, total),
	}
	if len(items) == 0 {
		resp["notice"] = "No restaurant is found!"
	}
	return c.JSON(resp)
}

// GetRestaurant handles GET /api/restaurants/:id
func (s *Server) GetRestaurant(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	restaurant, err := s.restaurantRepo.GetDetail(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Restaurant", id))
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Every detail view counts, the owner's own views included.
	if err := s.restaurantRepo.IncrementViewCounts(ctx, restaurant.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	restaurant.ViewCounts++
	middleware.RestaurantViews.Inc()

	viewerID, authed := s.optionalUserID(c)
	detail := models.RestaurantDetail{
		Restaurant:  *restaurant,
		IsFavorited: authed && containsUserID(restaurant.FavoritedUsers, viewerID),
		IsLiked:     authed && containsUserID(restaurant.LikedUsers, viewerID),
	}
	return c.JSON(detail)
}

// GetDashboard handles GET /api/restaurants/:id/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	restaurant, err := s.restaurantRepo.GetWithCategory(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Restaurant", id))
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"restaurant": restaurant})
}

// GetFeeds handles GET /api/restaurants/feeds
func (s *Server) GetFeeds(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var (
		restaurants []models.Restaurant
		comments    []models.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		restaurants, err = s.restaurantRepo.ListNewest(gctx, feedSize)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.ListNewest(gctx, feedSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	feed := make([]models.FeedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		r.Description = truncate(r.Description, feedDescriptionLength) + " ..."
		feed = append(feed, models.FeedRestaurant{Restaurant: r})
	}

	resp := fiber.Map{
		"restaurants": feed,
		"comments":    comments,
	}
	var notices []string
	if len(restaurants) == 0 {
		notices = append(notices, "No restaurants yet")
	}
	if len(comments) == 0 {
		notices = append(notices, "No comments yet, write the first one")
	}
	if len(notices) > 0 {
		resp["notices"] = notices
	}
	return c.JSON(resp)
}

// GetTopRestaurants handles GET /api/restaurants/top
func (s *Server) GetTopRestaurants(c *fiber.Ctx) error {
	ctx := c.UserContext()

	restaurants, err := s.restaurantRepo.ListWithFavoriters(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	viewer, err := s.viewer(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	var favorited map[uint]struct{}
	if viewer != nil {
		favorited = restaurantIDSet(viewer.FavoritedRestaurants)
	}

	top := make([]models.TopRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		count := len(r.FavoritedUsers)
		_, isFavorited := favorited[r.ID]
		r.Description = truncate(r.Description, topDescriptionLength)
		top = append(top, models.TopRestaurant{
			Restaurant:     r,
			FavoritedCount: count,
			IsFavorited:    isFavorited,
		})
	}

	// Stable sort keeps the fetch order on ties.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].FavoritedCount > top[j].FavoritedCount
	})
	if len(top) > topSize {
		top = top[:topSize]
	}

	return c.JSON(fiber.Map{"restaurants": top})
}
