package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/models"
)

// Homepage content management. Reads are public; writes are super admin
// only (enforced by route middleware). Pure CRUD, no lifecycle.

func respondContentDBError(c *gin.Context, action string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to " + action,
		},
	})
}

// ListHeroContent handles GET /api/v1/hero - active hero slides in display order
func ListHeroContent(c *gin.Context) {
	var content []models.HeroContent
	err := config.GetDB().
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&content).Error
	if err != nil {
		respondContentDBError(c, "fetch hero content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": content})
}

// UpsertHeroContent handles POST /api/v1/super-admin/hero
func UpsertHeroContent(c *gin.Context) {
	var content models.HeroContent
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var err error
	if content.ID != "" {
		err = db.Model(&models.HeroContent{}).Where("id = ?", content.ID).Updates(&content).Error
	} else {
		err = db.Create(&content).Error
	}
	if err != nil {
		respondContentDBError(c, "save hero content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": content})
}

// DeleteHeroContent handles DELETE /api/v1/super-admin/hero/:id
func DeleteHeroContent(c *gin.Context) {
	if err := config.GetDB().Delete(&models.HeroContent{}, "id = ?", c.Param("id")).Error; err != nil {
		respondContentDBError(c, "delete hero content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Hero content deleted"}})
}

// GetAboutUs handles GET /api/v1/about - the single about-us block
func GetAboutUs(c *gin.Context) {
	var content models.AboutUs
	err := config.GetDB().First(&content).Error
	if err != nil {
		// No block yet is not an error; the homepage just omits the section
		c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": content})
}

// UpsertAboutUs handles POST /api/v1/super-admin/about
func UpsertAboutUs(c *gin.Context) {
	var content models.AboutUs
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var existing models.AboutUs
	if err := db.First(&existing).Error; err == nil {
		content.ID = existing.ID
		if err := db.Model(&existing).Updates(&content).Error; err != nil {
			respondContentDBError(c, "save about us")
			return
		}
	} else if err := db.Create(&content).Error; err != nil {
		respondContentDBError(c, "save about us")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": content})
}

// ListCompanies handles GET /api/v1/companies - active partner logos
func ListCompanies(c *gin.Context) {
	var companies []models.Company
	err := config.GetDB().
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&companies).Error
	if err != nil {
		respondContentDBError(c, "fetch companies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": companies})
}

// UpsertCompany handles POST /api/v1/super-admin/companies
func UpsertCompany(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var err error
	if company.ID != "" {
		err = db.Model(&models.Company{}).Where("id = ?", company.ID).Updates(&company).Error
	} else {
		err = db.Create(&company).Error
	}
	if err != nil {
		respondContentDBError(c, "save company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": company})
}

// DeleteCompany handles DELETE /api/v1/super-admin/companies/:id
func DeleteCompany(c *gin.Context) {
	if err := config.GetDB().Delete(&models.Company{}, "id = ?", c.Param("id")).Error; err != nil {
		respondContentDBError(c, "delete company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Company deleted"}})
}

// ListSocialLinks handles GET /api/v1/social-links - active footer links
func ListSocialLinks(c *gin.Context) {
	var links []models.SocialMediaLink
	err := config.GetDB().
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&links).Error
	if err != nil {
		respondContentDBError(c, "fetch social links")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": links})
}

// UpsertSocialLink handles POST /api/v1/super-admin/social-links
func UpsertSocialLink(c *gin.Context) {
	var link models.SocialMediaLink
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var err error
	if link.ID != "" {
		err = db.Model(&models.SocialMediaLink{}).Where("id = ?", link.ID).Updates(&link).Error
	} else {
		err = db.Create(&link).Error
	}
	if err != nil {
		respondContentDBError(c, "save social link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": link})
}

// DeleteSocialLink handles DELETE /api/v1/super-admin/social-links/:id
func DeleteSocialLink(c *gin.Context) {
	if err := config.GetDB().Delete(&models.SocialMediaLink{}, "id = ?", c.Param("id")).Error; err != nil {
		respondContentDBError(c, "delete social link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Social link deleted"}})
}

// GetTermsPolicy handles GET /api/v1/terms/:type - terms or privacy document
func GetTermsPolicy(c *gin.Context) {
	var policy models.TermsPolicy
	if err := config.GetDB().Where("type = ?", c.Param("type")).First(&policy).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Policy not found",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": policy})
}

// UpsertTermsPolicy handles POST /api/v1/super-admin/terms
func UpsertTermsPolicy(c *gin.Context) {
	var policy models.TermsPolicy
	if err := c.ShouldBindJSON(&policy); err != nil || policy.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Policy type is required",
			},
		})
		return
	}

	db := config.GetDB()
	var existing models.TermsPolicy
	if err := db.Where("type = ?", policy.Type).First(&existing).Error; err == nil {
		policy.ID = existing.ID
		if err := db.Model(&existing).Updates(&policy).Error; err != nil {
			respondContentDBError(c, "save policy")
			return
		}
	} else if err := db.Create(&policy).Error; err != nil {
		respondContentDBError(c, "save policy")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": policy})
}
