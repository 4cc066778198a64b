package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"synergyblood/internal/domain"
	"synergyblood/internal/models"
	"synergyblood/pkg/geo"
)

// NotificationStore persists per-user inbox notifications.
type NotificationStore interface {
	Create(*models.Notification) error
}

// UserStore looks up accounts, mainly for FCM tokens.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

// NotificationService writes inbox notifications and fans out FCM pushes.
type NotificationService struct {
	store    NotificationStore
	users    UserStore
	medical  MedicalStore
	fcm      *FCMService
	radiusKm float64
}

func NewNotificationService(store NotificationStore, users UserStore, medical MedicalStore, fcm *FCMService, radiusKm float64) *NotificationService {
	return &NotificationService{store: store, users: users, medical: medical, fcm: fcm, radiusKm: radiusKm}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.store.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.users == nil {
		return
	}
	u, err := s.users.GetByID(userID)
	if err != nil || u == nil || u.FCMToken == "" {
		return
	}
	_ = s.fcm.SendToUser(context.Background(), u.FCMToken, notifType, title, body, data)
}

// NotifyNearbyDonors alerts every available donor whose profile coordinates
// fall within the feed radius of a newly created request. The requester is
// never notified about their own request. Donors without usable coordinates
// are skipped. Returns how many donors were notified.
func (s *NotificationService) NotifyNearbyDonors(req *models.BloodRequest) (int, error) {
	donors, err := s.medical.ListAvailableDonors()
	if err != nil {
		return 0, err
	}
	located := make([]models.MedicalInfo, 0, len(donors))
	for _, d := range donors {
		if d.UserID == req.RequesterID {
			continue
		}
		if d.Latitude == nil || d.Longitude == nil {
			continue
		}
		if (geo.Point{Latitude: *d.Latitude, Longitude: *d.Longitude}).Validate() != nil {
			continue
		}
		located = append(located, d)
	}
	origin := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	nearby, err := geo.FilterWithinRadius(origin, s.radiusKm, located, func(d models.MedicalInfo) geo.Point {
		return geo.Point{Latitude: *d.Latitude, Longitude: *d.Longitude}
	})
	if err != nil {
		return 0, err
	}
	notified := 0
	for _, n := range nearby {
		title := "Blood Request"
		body := fmt.Sprintf("%s needs %s blood at %s (%.1f km away)",
			req.RequesterName, req.RequesterBloodGroup, req.HospitalName, n.DistanceKm)
		err := s.Notify(n.Item.UserID, domain.NotifTypeBloodRequest, title, body, map[string]interface{}{
			"request_id":  req.ID,
			"blood_group": req.RequesterBloodGroup,
			"distance_km": n.DistanceKm,
		})
		if err != nil {
			log.Printf("[notify] donor %d: %v", n.Item.UserID, err)
			continue
		}
		notified++
	}
	return notified, nil
}
