package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/mailservice"
	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func groupJSON(group *models.CompanyGroup) gin.H {
	return gin.H{
		"group_id": group.ID,
		"name":     group.Name,
		"owner_id": group.OwnerID,
	}
}

// CreateGroupHandler creates a company group owned by the caller.
func CreateGroupHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	group, err := CreateGroup(db, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, groupJSON(group))
}

// GetGroupListHandler lists the groups the caller is a member of.
func GetGroupListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var groups []models.CompanyGroup
	err := db.
		Joins("JOIN company_group_memberships ON company_group_memberships.group_id = company_groups.id").
		Where("company_group_memberships.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		list = append(list, groupJSON(&group))
	}

	c.JSON(http.StatusOK, gin.H{"groups": list})
}

// GetGroupMembershipsHandler lists memberships visible to the caller:
// their own plus those of groups they own.
func GetGroupMembershipsHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var memberships []models.CompanyGroupMembership
	err := db.
		Preload("User").
		Preload("Group").
		Joins("JOIN company_groups ON company_groups.id = company_group_memberships.group_id").
		Where("company_group_memberships.user_id = ? OR company_groups.owner_id = ?", userID, userID).
		Find(&memberships).Error
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(memberships))
	for _, membership := range memberships {
		list = append(list, gin.H{
			"group_id": membership.GroupID,
			"group":    membership.Group.Name,
			"email":    membership.User.Email,
			"role":     membership.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{"memberships": list})
}

// InviteMemberHandler invites an email address into a group. Only the
// group owner may invite; the invitation mail is sent best effort after the
// invitation row exists.
func InviteMemberHandler(c *gin.Context, db *gorm.DB, mail *mailservice.Client) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("groupID")

	var group models.CompanyGroup
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		respondError(c, err)
		return
	}
	if group.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the group owner can invite members"})
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	invitation, err := InviteToGroup(db, &group, userID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	var inviter models.User
	if err := db.First(&inviter, userID).Error; err == nil {
		invitation.InvitedBy = inviter
		mail.SendGroupInvitationMail(invitation)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "Invitation sent.",
	})
}

// GetInvitationListHandler lists invitations the caller sent or received.
func GetInvitationListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		respondError(c, err)
		return
	}

	var invitations []models.GroupInvitation
	err := db.
		Preload("Group").
		Where("invited_by_id = ? OR email = ?", userID, user.Email).
		Find(&invitations).Error
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(invitations))
	for _, invitation := range invitations {
		list = append(list, gin.H{
			"email":  invitation.Email,
			"group":  invitation.Group.Name,
			"status": invitation.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"invitations": list})
}

// respondInvitationError keeps the original contract: unknown tokens and
// already-resolved invitations both come back as 400.
func respondInvitationError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrInvalidState) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invitation."})
		return
	}
	respondError(c, err)
}

// AcceptInvitationHandler resolves an invitation token and joins the
// invited user to the group. No authentication required, the token is the
// credential.
func AcceptInvitationHandler(c *gin.Context, db *gorm.DB) {
	token := c.Param("token")

	invitation, err := AcceptInvitation(db, token)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Invitation accepted for group %s.", invitation.Group.Name),
	})
}

// DeclineInvitationHandler resolves an invitation token and declines it.
func DeclineInvitationHandler(c *gin.Context, db *gorm.DB) {
	token := c.Param("token")

	invitation, err := DeclineInvitation(db, token)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Invitation declined for group %s.", invitation.Group.Name),
	})
}
