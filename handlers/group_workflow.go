package handlers

import (
	"errors"
	"fmt"

	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateGroup creates a company group and the creator's owner membership
// together.
func CreateGroup(db *gorm.DB, ownerID uint, name string) (*models.CompanyGroup, error) {
	group := models.CompanyGroup{
		Name:    name,
		OwnerID: ownerID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Create(&models.CompanyGroupMembership{
			UserID:  ownerID,
			GroupID: group.ID,
			Role:    models.GroupRoleOwner,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	return &group, nil
}

// InviteToGroup records a pending invitation for an email address. The
// invitee does not need an account yet; one is required only to accept.
func InviteToGroup(db *gorm.DB, group *models.CompanyGroup, invitedByID uint, email string) (*models.GroupInvitation, error) {
	if email == "" {
		return nil, models.NewFieldError("email", "Email is required.")
	}

	invitation := models.GroupInvitation{
		Email:       email,
		GroupID:     group.ID,
		InvitedByID: invitedByID,
		InviteToken: uuid.NewString(),
		Status:      models.InvitationStatusPending,
	}
	if err := db.Create(&invitation).Error; err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	invitation.Group = *group
	return &invitation, nil
}

// resolvePendingInvitation loads an invitation by token and enforces the
// state machine: only pending invitations may transition.
func resolvePendingInvitation(db *gorm.DB, token string) (*models.GroupInvitation, error) {
	var invitation models.GroupInvitation
	err := db.
		Preload("Group").
		Where("invite_token = ?", token).
		First(&invitation).Error
	if err != nil {
		return nil, err
	}

	if invitation.Status != models.InvitationStatusPending {
		return nil, fmt.Errorf("%w: invitation already %s", models.ErrInvalidState, invitation.Status)
	}

	return &invitation, nil
}

// transitionInvitation moves a pending invitation to a terminal status.
// The pending guard sits in the UPDATE itself, so a concurrent resolution
// cannot be overwritten; zero affected rows means another caller won.
func transitionInvitation(tx *gorm.DB, invitation *models.GroupInvitation, status models.InvitationStatus) error {
	result := tx.Model(&models.GroupInvitation{}).
		Where("id = ? AND status = ?", invitation.ID, models.InvitationStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: invitation already resolved", models.ErrInvalidState)
	}

	invitation.Status = status
	return nil
}

// AcceptInvitation flips a pending invitation to accepted and creates the
// member-role membership. The invited email must belong to an existing
// account; accounts are never created on the fly here. The membership table
// keeps exactly one row per (user, group) even when several invitations
// target the same pair.
func AcceptInvitation(db *gorm.DB, token string) (*models.GroupInvitation, error) {
	invitation, err := resolvePendingInvitation(db, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.First(&user, "email = ?", invitation.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewFieldError("email", "User does not exist. Please register first.")
		}
		return nil, fmt.Errorf("resolve invited user: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := transitionInvitation(tx, invitation, models.InvitationStatusAccepted); err != nil {
			return err
		}

		var membership models.CompanyGroupMembership
		return tx.
			Where(models.CompanyGroupMembership{
				UserID:  user.ID,
				GroupID: invitation.GroupID,
			}).
			Attrs(models.CompanyGroupMembership{Role: models.GroupRoleMember}).
			FirstOrCreate(&membership).Error
	})
	if err != nil {
		return nil, fmt.Errorf("accept invitation: %w", err)
	}

	return invitation, nil
}

// DeclineInvitation flips a pending invitation to declined. No membership
// is touched.
func DeclineInvitation(db *gorm.DB, token string) (*models.GroupInvitation, error) {
	invitation, err := resolvePendingInvitation(db, token)
	if err != nil {
		return nil, err
	}

	if err := transitionInvitation(db, invitation, models.InvitationStatusDeclined); err != nil {
		return nil, err
	}

	return invitation, nil
}
