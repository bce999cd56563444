package v1

import (
	"net/http"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/middleware"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HospitalController handles the hospital directory endpoints
type HospitalController struct {
	hospitalService *services.HospitalService
	maxUploadBytes  int64
	log             *zap.Logger
}

// NewHospitalController creates a new hospital controller
func NewHospitalController(hospitalService *services.HospitalService, maxUploadBytes int64, log *zap.Logger) *HospitalController {
	return &HospitalController{hospitalService: hospitalService, maxUploadBytes: maxUploadBytes, log: log}
}

// RegisterRoutes registers hospital routes. Writes are limited to
// administrators before the body is read.
func (ctl *HospitalController) RegisterRoutes(router *gin.RouterGroup) {
	hospitals := router.Group("/hospitals")
	{
		hospitals.GET("", ctl.ListHospitals)
		hospitals.GET("/:hrn", ctl.GetHospital)
		hospitals.GET("/:hrn/image", ctl.GetHospitalImage)

		manage := []gin.HandlerFunc{
			middleware.AdminMiddleware(policy.CanManageHospitals),
			middleware.BodyLimit(ctl.maxUploadBytes + uploadFormOverhead),
		}
		hospitals.POST("", append(manage, ctl.CreateHospital)...)
		hospitals.PUT("/:hrn", append(manage, ctl.UpdateHospital)...)
	}
}

// ListHospitals returns the whole directory ordered by name
func (ctl *HospitalController) ListHospitals(c *gin.Context) {
	response, err := ctl.hospitalService.List(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// GetHospital returns one hospital by registration number
func (ctl *HospitalController) GetHospital(c *gin.Context) {
	hospital, err := ctl.hospitalService.Get(c.Request.Context(), c.Param("hrn"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   hospital,
	})
}

// GetHospitalImage serves a hospital's uploaded image
func (ctl *HospitalController) GetHospitalImage(c *gin.Context) {
	img, err := ctl.hospitalService.Image(c.Request.Context(), c.Param("hrn"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondImage(c, img)
}

// CreateHospital adds a hospital from a JSON body or a multipart form with an optional "image"
func (ctl *HospitalController) CreateHospital(c *gin.Context) {
	req, image, ok := ctl.bindHospital(c)
	if !ok {
		return
	}

	hospital, err := ctl.hospitalService.Create(c.Request.Context(), middleware.CurrentActor(c), req, image)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Hospital added.",
		"data":    hospital,
	})
}

// UpdateHospital edits the hospital currently registered as :hrn
func (ctl *HospitalController) UpdateHospital(c *gin.Context) {
	req, image, ok := ctl.bindHospital(c)
	if !ok {
		return
	}

	hospital, err := ctl.hospitalService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("hrn"), req, image)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Your changes have been saved.",
		"data":    hospital,
	})
}

func (ctl *HospitalController) bindHospital(c *gin.Context) (dto.HospitalRequest, *dto.FileUpload, bool) {
	var req dto.HospitalRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return req, nil, false
	}
	image, err := readUpload(c, "image", ctl.maxUploadBytes)
	if err != nil {
		respondBindError(c, err)
		return req, nil, false
	}
	return req, image, true
}
