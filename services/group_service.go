package services

import (
	"errors"
	"fmt"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"gorm.io/gorm"
)

// GroupService manages membership of the Manager and Delivery crew groups.
// Only those two are reachable over the API; the Customer group is assigned
// at registration and never managed here.
type GroupService struct {
	DB    *gorm.DB
	Users *repository.UserRepository
}

func NewGroupService(db *gorm.DB, users *repository.UserRepository) *GroupService {
	return &GroupService{DB: db, Users: users}
}

func (s *GroupService) ListMembers(p Principal, groupName string) ([]entity.User, error) {
	if !p.CanManageGroups() {
		return nil, fmt.Errorf("%w: cannot manage groups", ErrPermission)
	}
	if _, err := s.Users.GroupByName(groupName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: group %q", ErrNotFound, groupName)
		}
		return nil, err
	}
	return s.Users.ListGroupMembers(groupName)
}

func (s *GroupService) AddMember(p Principal, groupName string, userID uint) error {
	if !p.CanManageGroups() {
		return fmt.Errorf("%w: cannot manage groups", ErrPermission)
	}
	user, group, err := s.resolve(groupName, userID)
	if err != nil {
		return err
	}

	already, err := s.Users.IsInGroup(userID, groupName)
	if err != nil {
		return err
	}
	if already {
		return fmt.Errorf("%w: user %d already in group %q", ErrConflict, userID, groupName)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Users.AddToGroup(tx, user, group)
	})
}

func (s *GroupService) RemoveMember(p Principal, groupName string, userID uint) error {
	if !p.CanManageGroups() {
		return fmt.Errorf("%w: cannot manage groups", ErrPermission)
	}
	user, group, err := s.resolve(groupName, userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Users.RemoveFromGroup(tx, user, group)
	})
}

func (s *GroupService) resolve(groupName string, userID uint) (*entity.User, *entity.Group, error) {
	group, err := s.Users.GroupByName(groupName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: group %q", ErrNotFound, groupName)
		}
		return nil, nil, err
	}
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, nil, err
	}
	return user, group, nil
}
