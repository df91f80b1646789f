package server

import (
	"errors"
	"mime/multipart"
	"sort"
	"strings"

	"forkful/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	var (
		profile   *models.User
		commented []models.CommentedRestaurant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.userRepo.GetProfile(gctx, uint(id))
		return err
	})
	g.Go(func() error {
		var err error
		commented, err = s.commentRepo.ListCommentedRestaurants(gctx, uint(id))
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	viewer, err := s.viewer(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	isFollowed := viewer != nil && containsUserID(viewer.Followings, profile.ID)

	return c.JSON(fiber.Map{
		"profile": models.UserProfile{
			User:       *profile,
			IsFollowed: isFollowed,
		},
		"commented_restaurants": commented,
	})
}

// UpdateUser handles PUT /api/users/:id (multipart: name + optional image)
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}
	if uint(id) != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only edit your own profile"))
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User name is required!"))
	}

	// Missing file just means "keep the current image".
	file, ferr := c.FormFile("image")
	if ferr != nil {
		file = nil
	}

	var (
		user     *models.User
		imageURL string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.userRepo.GetByID(gctx, uint(id))
		return err
	})
	g.Go(func() error {
		var err error
		imageURL, err = s.uploadImage(file)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user.Name = name
	if imageURL != "" {
		user.Image = imageURL
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (s *Server) uploadImage(file *multipart.FileHeader) (string, error) {
	if file == nil || s.uploader == nil {
		return "", nil
	}
	return s.uploader.Upload(file)
}

// GetTopUsers handles GET /api/users/top
func (s *Server) GetTopUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	users, err := s.userRepo.ListWithFollowers(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	viewer, err := s.viewer(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	top := make([]models.TopUser, 0, len(users))
	for _, u := range users {
		top = append(top, models.TopUser{
			User:          u,
			FollowerCount: len(u.Followers),
			IsFollowed:    viewer != nil && containsUserID(viewer.Followings, u.ID),
		})
	}

	// Stable sort keeps the fetch order on ties; the full list is rendered.
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].FollowerCount > top[j].FollowerCount
	})

	return c.JSON(fiber.Map{"users": top})
}

// AddFavorite handles POST /api/favorites/:restaurantId
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	restaurantID, err := c.ParamsInt("restaurantId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	if err := s.requireRestaurant(c, uint(restaurantID)); err != nil {
		return err
	}

	if err := s.relationRepo.AddFavorite(ctx, userID, uint(restaurantID)); err != nil {
		return s.respondRelationError(c, err, "You have favorited this restaurant!")
	}

	return c.JSON(fiber.Map{"message": "Restaurant favorited"})
}

// RemoveFavorite handles DELETE /api/favorites/:restaurantId
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	restaurantID, err := c.ParamsInt("restaurantId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	if err := s.relationRepo.RemoveFavorite(ctx, userID, uint(restaurantID)); err != nil {
		return s.respondRelationError(c, err, "You haven't favorited this restaurant")
	}

	return c.JSON(fiber.Map{"message": "Favorite removed"})
}

// AddLike handles POST /api/likes/:restaurantId
func (s *Server) AddLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	restaurantID, err := c.ParamsInt("restaurantId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	if err := s.requireRestaurant(c, uint(restaurantID)); err != nil {
		return err
	}

	if err := s.relationRepo.AddLike(ctx, userID, uint(restaurantID)); err != nil {
		return s.respondRelationError(c, err, "You have liked this restaurant!")
	}

	return c.JSON(fiber.Map{"message": "Restaurant liked"})
}

// RemoveLike handles DELETE /api/likes/:restaurantId
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	restaurantID, err := c.ParamsInt("restaurantId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid restaurant ID"))
	}

	if err := s.relationRepo.RemoveLike(ctx, userID, uint(restaurantID)); err != nil {
		return s.respondRelationError(c, err, "You haven't liked this restaurant")
	}

	return c.JSON(fiber.Map{"message": "Like removed"})
}

// AddFollowing handles POST /api/following/:userId
func (s *Server) AddFollowing(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	if uint(targetID) == userID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot follow yourself"))
	}

	if _, err := s.userRepo.GetByID(ctx, uint(targetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", targetID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.relationRepo.Follow(ctx, userID, uint(targetID)); err != nil {
		return s.respondRelationError(c, err, "You have followed this user!")
	}

	return c.JSON(fiber.Map{"message": "User followed"})
}

// RemoveFollowing handles DELETE /api/following/:userId
func (s *Server) RemoveFollowing(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := c.ParamsInt("userId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	if err := s.relationRepo.Unfollow(ctx, userID, uint(targetID)); err != nil {
		return s.respondRelationError(c, err, "You haven't followed this user!")
	}

	return c.JSON(fiber.Map{"message": "User unfollowed"})
}

// requireRestaurant responds with NotFound when the restaurant is absent.
// It returns nil only when the handler may proceed.
func (s *Server) requireRestaurant(c *fiber.Ctx, id uint) error {
	if _, err := s.restaurantRepo.GetByID(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Restaurant", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return nil
}
