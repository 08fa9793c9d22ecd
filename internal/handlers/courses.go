// courses.go — the course catalog.
//
// Courses and their tees are platform-wide reference data, not per-trip:
// every trip schedules rounds against the same catalog, so creating entries
// is gated to global admins at the route level (middleware.RequireRole)
// rather than checked per trip inside the handler.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
)

// CreateCourseRequest is the JSON body for POST /api/v1/courses: a course
// with its tees and per-hole data in one shot, so a course is never half
// entered.
type CreateCourseRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Tees  []struct {
		Name         string  `json:"name"`
		Gender       string  `json:"gender"`
		CourseRating float64 `json:"course_rating"`
		SlopeRating  int     `json:"slope_rating"`
		Par          int     `json:"par"`
		Holes        []struct {
			HoleNumber  int  `json:"hole_number"`
			Par         int  `json:"par"`
			StrokeIndex int  `json:"stroke_index"`
			Yardage     *int `json:"yardage"`
		} `json:"holes"`
	} `json:"tees"`
}

// GetCourses returns a handler for GET /api/v1/courses. Any authenticated
// user can browse the catalog when scheduling a round.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Preload("Tees").Order("name").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch courses"})
		}
		return c.JSON(courses)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses. Admin only —
// enforced by RequireRole on the route.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "course name is required"})
		}
		for _, t := range req.Tees {
			if t.SlopeRating < 55 || t.SlopeRating > 155 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slope rating must be between 55 and 155"})
			}
		}

		course := models.Course{Name: req.Name, City: req.City, State: req.State}
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			for _, t := range req.Tees {
				tee := models.Tee{
					CourseID:     course.ID,
					Name:         t.Name,
					Gender:       models.TeeGender(t.Gender),
					CourseRating: t.CourseRating,
					SlopeRating:  t.SlopeRating,
					Par:          t.Par,
				}
				if tee.Gender == "" {
					tee.Gender = models.TeeGenderMens
				}
				if err := tx.Create(&tee).Error; err != nil {
					return err
				}
				for _, h := range t.Holes {
					hole := models.Hole{
						TeeID:       tee.ID,
						HoleNumber:  h.HoleNumber,
						Par:         h.Par,
						StrokeIndex: h.StrokeIndex,
						Yardage:     h.Yardage,
					}
					if err := tx.Create(&hole).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create course"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": course.ID.String()})
	}
}
