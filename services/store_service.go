package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"pricing-backend/models"
	"pricing-backend/pricing"
)

var ErrDuplicate = errors.New("duplicate")

// StoreService is the system of record behind the engine. It executes
// pricing commands with gorm, one transaction per batch.
type StoreService struct {
	DB *gorm.DB
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{DB: db}
}

func (s *StoreService) LoadChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	err := s.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&channels).Error
	return channels, err
}

func (s *StoreService) LoadTabs(ctx context.Context) ([]models.ChannelTab, error) {
	var tabs []models.ChannelTab
	err := s.DB.WithContext(ctx).Order("position ASC").Find(&tabs).Error
	return tabs, err
}

// Dispatch implements pricing.Dispatcher.
func (s *StoreService) Dispatch(ctx context.Context, cmds []pricing.Command) error {
	log.Printf("➡️ StoreService.Dispatch %d commands", len(cmds))

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cmd := range cmds {
			if err := applyCommand(tx, cmd); err != nil {
				return fmt.Errorf("%s: %w", cmd.Kind, err)
			}
		}
		return nil
	})
	err = translateDBError(err)

	log.Printf("⬅️ StoreService.Dispatch err=%v", err)
	return err
}

func applyCommand(tx *gorm.DB, cmd pricing.Command) error {
	switch cmd.Kind {
	case pricing.CmdAddRoomType:
		return tx.Create(cmd.StayType).Error

	case pricing.CmdUpdateRoomType:
		var existing models.StayType
		if err := tx.First(&existing, cmd.StayType.ID).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"name":       cmd.StayType.Name,
			"base_price": cmd.StayType.BasePrice,
		}).Error

	case pricing.CmdDeleteRoomType:
		id, err := strconv.ParseUint(cmd.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid stay type id %q: %w", cmd.ID, err)
		}
		result := tx.Delete(&models.StayType{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil

	case pricing.CmdAddChannel:
		return tx.Create(cmd.Channel).Error

	case pricing.CmdUpdateChannel:
		// RowsAffected can be 0 on MySQL when nothing changed (e.g. a reset
		// of a channel already at 0%), so it is not checked here.
		return tx.Model(&models.Channel{}).
			Where("id = ?", cmd.Channel.ID).
			Updates(map[string]interface{}{
				"name":                   cmd.Channel.Name,
				"type":                   cmd.Channel.Type,
				"tab_key":                cmd.Channel.TabKey,
				"price_modifier_percent": cmd.Channel.PriceModifierPercent,
				"status":                 cmd.Channel.Status,
			}).Error

	case pricing.CmdDeleteChannel:
		return tx.Where("id = ?", cmd.ID).Delete(&models.Channel{}).Error

	case pricing.CmdAddChannelTab:
		return tx.Create(cmd.Tab).Error

	case pricing.CmdDeleteChannelTab:
		// Channels under the tab are left in place.
		return tx.Where("tab_key = ?", cmd.ID).Delete(&models.ChannelTab{}).Error

	default:
		return fmt.Errorf("unknown command %q", cmd.Kind)
	}
}

func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
