package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

// Notifier fans notifications out to the counterpart role when a post is
// created and notifies the donor on fulfillment. Delivery is best-effort:
// failures are logged and never fail the operation that triggered them.
type Notifier struct {
	notifications *store.Notifications
	users         *store.Users
	log           *zap.Logger
}

func NewNotifier(notifications *store.Notifications, users *store.Users, log *zap.Logger) *Notifier {
	return &Notifier{notifications: notifications, users: users, log: log}
}

// FanOutNewDonation inserts one new_donation notification per receiver.
func (n *Notifier) FanOutNewDonation(ctx context.Context, post *models.DonationPost) {
	receivers, err := n.users.ListByRole(ctx, models.RoleReceiver)
	if err != nil {
		n.log.Error("fan-out: listing receivers failed", zap.Error(err), zap.String("postId", post.Id.Hex()))
		return
	}

	message := fmt.Sprintf("New %s blood donation available at %s", post.BloodType, post.Hospital)
	batch := make([]models.Notification, 0, len(receivers))
	for _, receiver := range receivers {
		batch = append(batch, models.Notification{
			UserId:   receiver.Id,
			Type:     models.NotificationNewDonation,
			Message:  message,
			PostId:   post.Id,
			PostType: models.PostTypeDonation,
		})
	}

	if err := n.notifications.InsertMany(ctx, batch); err != nil {
		n.log.Error("fan-out: inserting donation notifications failed",
			zap.Error(err), zap.String("postId", post.Id.Hex()), zap.Int("recipients", len(batch)))
	}
}

// FanOutNewRequest inserts one new_request notification per donor, with an
// urgency marker on emergency requests.
func (n *Notifier) FanOutNewRequest(ctx context.Context, post *models.RequestPost) {
	donors, err := n.users.ListByRole(ctx, models.RoleDonor)
	if err != nil {
		n.log.Error("fan-out: listing donors failed", zap.Error(err), zap.String("postId", post.Id.Hex()))
		return
	}

	urgency := ""
	if post.RequestType == models.RequestEmergency {
		urgency = "EMERGENCY: "
	}
	message := fmt.Sprintf("%sNew %s blood request at %s", urgency, post.BloodType, post.Hospital)

	batch := make([]models.Notification, 0, len(donors))
	for _, donor := range donors {
		batch = append(batch, models.Notification{
			UserId:   donor.Id,
			Type:     models.NotificationNewRequest,
			Message:  message,
			PostId:   post.Id,
			PostType: models.PostTypeRequest,
		})
	}

	if err := n.notifications.InsertMany(ctx, batch); err != nil {
		n.log.Error("fan-out: inserting request notifications failed",
			zap.Error(err), zap.String("postId", post.Id.Hex()), zap.Int("recipients", len(batch)))
	}
}

// NotifyDonationFulfilled tells the donor their donation was accepted.
func (n *Notifier) NotifyDonationFulfilled(ctx context.Context, post *models.DonationPost) {
	notification := models.Notification{
		UserId:   post.DonorId,
		Type:     models.NotificationDonationFulfilled,
		Message:  fmt.Sprintf("Your %s blood donation has been accepted by a receiver!", post.BloodType),
		PostId:   post.Id,
		PostType: models.PostTypeDonation,
	}
	if err := n.notifications.Insert(ctx, &notification); err != nil {
		n.log.Error("notify: donation fulfilled insert failed",
			zap.Error(err), zap.String("postId", post.Id.Hex()))
	}
}
