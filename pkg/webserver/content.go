package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safewings/api/pkg/models"
	"github.com/safewings/api/pkg/utils"
)

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var faqEntries = []faqEntry{
	{
		Question: "How does this service work?",
		Answer:   "When you sign up, you create heartfelt messages for up to 5 people you care about. These messages are securely stored and are only sent if there's a verified flight emergency or incident. If your flight completes safely (which is almost always the case), your messages remain private and are never sent.",
	},
	{
		Question: "What constitutes a 'flight emergency' or incident?",
		Answer:   "Messages are only sent in cases of verified fatal accidents or extreme emergencies where passengers cannot communicate themselves. We work with official aviation authorities and only act on confirmed incidents. This is an extremely rare occurrence - the vast majority of flights (99.99%+) complete safely.",
	},
	{
		Question: "How much does it cost?",
		Answer:   "The basic service costs ₹5 per flight and covers messages to up to 5 people. You can optionally upgrade for ₹99 to include surprise gifts worth thousands of rupees, but this is completely optional. We also offer a 30-day refund policy if no incident occurs.",
	},
	{
		Question: "Is my personal information safe?",
		Answer:   "Absolutely. Your messages and personal information are encrypted and stored with bank-level security. They are never shared with anyone and are only accessed in the extremely rare case of a verified incident. We take your privacy very seriously.",
	},
	{
		Question: "What happens if my flight is just delayed or has minor issues?",
		Answer:   "Messages are only sent in cases of fatal accidents or extreme emergencies. Flight delays, turbulence, mechanical issues that result in safe landings, or other non-fatal incidents do not trigger message delivery. Only verified fatal accidents result in message sending.",
	},
	{
		Question: "Can I get my money back?",
		Answer:   "Yes! We offer a 30-day auto-refund policy. If no incident occurs within 30 days of your flight, you can get your money back automatically. This removes any financial worry and shows our confidence that you'll arrive safely.",
	},
	{
		Question: "How do you verify flight incidents?",
		Answer:   "We work with official aviation authorities, news agencies, and airline communications to verify incidents. We never act on rumors or unconfirmed reports. Only officially confirmed fatal accidents or extreme emergencies trigger our service.",
	},
	{
		Question: "What kind of gifts are included in the upgrade?",
		Answer:   "The premium upgrade includes surprise gifts worth ₹5,000-75,000 such as electronics (smartphones, tablets), meaningful jewelry, or experience vouchers. These are only delivered in case of verified incidents and are meant to provide additional comfort to your loved ones.",
	},
	{
		Question: "Can I update my messages or recipients?",
		Answer:   "Yes, you can update your messages, change recipients, or modify your account anytime through our app. Your messages stay current and relevant to your relationships.",
	},
	{
		Question: "What if I don't want the service anymore?",
		Answer:   "You can cancel anytime. If you haven't flown yet, you'll get a full refund. If you have the 30-day refund option enabled, you can get your money back for recent safe flights. There are no long-term commitments.",
	},
}

type giftOption struct {
	ID          models.GiftCategory `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Examples    []string            `json:"examples"`
}

var giftOptions = []giftOption{
	{
		ID:          models.GiftElectronics,
		Title:       "Premium Electronics",
		Description: "Surprise gifts worth ₹10,000-50,000",
		Examples:    []string{"Smartphone", "Tablet", "Smartwatch", "Headphones"},
	},
	{
		ID:          models.GiftJewelry,
		Title:       "Meaningful Jewelry",
		Description: "Symbolic pieces worth ₹5,000-25,000",
		Examples:    []string{"Pendant", "Bracelet", "Ring", "Chain"},
	},
	{
		ID:          models.GiftExperience,
		Title:       "Experience Vouchers",
		Description: "Memorable experiences worth ₹15,000-75,000",
		Examples:    []string{"Travel voucher", "Spa package", "Fine dining", "Concert tickets"},
	},
}

// getFAQ serves the frequently asked questions shown on the FAQ screen.
func (s *Server) getFAQ(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(faqEntries, ""))
}

// getPricing serves the fee schedule and gift catalog for the upgrade
// screen.
func (s *Server) getPricing(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"currency":    s.config.Pricing.Currency,
		"base_fee":    s.config.Pricing.BaseFee,
		"upgrade_fee": s.config.Pricing.UpgradeFee,
		"total_with_upgrade": s.config.Pricing.BaseFee +
			s.config.Pricing.UpgradeFee,
		"gift_options": giftOptions,
	}, ""))
}
