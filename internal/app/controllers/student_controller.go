package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
)

// StudentController handles student management operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents lists the students visible to the acting administrator
// @Summary List students
// @Description Lists students within the administrator's course scope, optionally narrowed to one course
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param curso query int false "Narrow the listing to one course"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentListResponse} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}

	filter, students, err := c.studentService.List(ctx.Request.Context(), account, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.StudentListResponse{
		Filter:   dto.NewFilterInfo(filter),
		Students: dto.NewStudentResponseList(students),
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Students retrieved"))
}

// GetStudent retrieves one student by ID
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student's course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), account, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewStudentResponse(student), "Student retrieved"))
}

// CreateStudent registers a student and their login account
// @Summary Create a student
// @Description Creates a student profile with its login account. Staff may only place students into courses they administer.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Username or cedula already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), account, services.StudentInput{
		Username: req.Username,
		Password: req.Password,
		CourseID: req.CourseID,
		Cedula:   req.Cedula,
		Names:    req.Names,
		Surnames: req.Surnames,
		Grade:    req.Grade,
		Group:    req.Group,
		Phone:    req.Phone,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.NewStudentResponse(student), "Student created"))
}

// UpdateStudent edits an existing student
// @Summary Update a student
// @Description Updates a student profile. Both the student's current course and any new course must be within scope.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Updated student information"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Username or cedula already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), account, id, services.StudentInput{
		Username: req.Username,
		CourseID: req.CourseID,
		Cedula:   req.Cedula,
		Names:    req.Names,
		Surnames: req.Surnames,
		Grade:    req.Grade,
		Group:    req.Group,
		Phone:    req.Phone,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewStudentResponse(student), "Student updated"))
}

// DeleteStudent removes a student and their login account
// @Summary Delete a student
// @Description Deletes the student's login account; the profile and all attendance and permission records go with it. Feedback messages survive without an author.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.SuccessResponse "Student deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student's course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), account, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Student deleted"})
}

// GetOwnProfile returns the profile of the authenticated student
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account has no student profile"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/me [get]
func (c *StudentController) GetOwnProfile(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Profile(ctx.Request.Context(), account.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewStudentResponse(student), "Profile retrieved"))
}
