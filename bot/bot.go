// Package bot is the Telegram front end over the ordering core: menu
// browsing, cart callbacks and the checkout conversation.
package bot

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"crispy-corner/config"
	"crispy-corner/models"
	"crispy-corner/services"
	"crispy-corner/upload"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// convoState tracks which customer-details field the conversation is
// collecting. The checkout wizard itself only sees the completed form.
type convoState int

const (
	convoIdle convoState = iota
	convoName
	convoPhone
	convoAddress
	convoCity
	convoPincode
)

type convoDraft struct {
	state   convoState
	details models.CustomerDetails
}

type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	catalog  *services.Catalog
	sessions *services.SessionRegistry
	routes   services.RouteFinder
	uploads  *upload.Client

	convos   map[int64]*convoDraft
	convosMu sync.RWMutex
}

func New(
	cfg *config.Config,
	catalog *services.Catalog,
	sessions *services.SessionRegistry,
	routes services.RouteFinder,
	uploads *upload.Client,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:      api,
		cfg:      cfg,
		catalog:  catalog,
		sessions: sessions,
		routes:   routes,
		uploads:  uploads,
		convos:   make(map[int64]*convoDraft),
	}, nil
}

// session keys Telegram chats into the shared registry.
func (b *Bot) session(chatID int64) *services.Session {
	return b.sessions.Get(fmt.Sprintf("tg:%d", chatID))
}

func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		if msg.Location != nil {
			b.handleLocation(chatID, msg.Location.Latitude, msg.Location.Longitude)
			continue
		}
		if msg.Contact != nil {
			b.handleContact(chatID, msg.Contact.PhoneNumber)
			continue
		}
		if len(msg.Photo) > 0 {
			b.handlePhoto(chatID, msg.Photo)
			continue
		}

		switch {
		case text == "/start":
			b.handleStart(chatID)
		case text == "/menu" || text == "🍔 Menu":
			b.sendCategories(chatID)
		case text == "/cart" || text == "🛒 Cart":
			b.sendCart(chatID)
		case text == "/checkout" || text == "✅ Checkout":
			b.startCheckout(chatID)
		default:
			b.handleText(chatID, text)
		}
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) handleStart(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🍔 Menu"),
			tgbotapi.NewKeyboardButton("🛒 Cart"),
			tgbotapi.NewKeyboardButton("✅ Checkout"),
		),
	)
	kb.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, "Welcome to Crispy Corner! Browse the menu, fill your cart, and we'll deliver.")
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendCategories(chatID int64) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cat := range b.catalog.Categories() {
		if cat == models.CategoryAll {
			continue
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(cat, "cat:"+cat),
		})
	}
	msg := tgbotapi.NewMessage(chatID, "Pick a category:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendCategory(chatID int64, category string) {
	items := b.catalog.List(category)
	if len(items) == 0 {
		b.send(chatID, "Nothing in this category yet.")
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range items {
		label := fmt.Sprintf("➕ %s — ₹%d", it.Name, it.Price)
		if it.IsPopular {
			label += " ⭐"
		}
		if it.IsNew {
			label += " �new"
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, "add:"+it.ID),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("« Categories", "cats"),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Cart", "cart"),
	})
	msg := tgbotapi.NewMessage(chatID, category+":")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendCart(chatID int64) {
	sess := b.session(chatID)
	sess.Lock()
	defer sess.Unlock()

	if sess.Cart.IsEmpty() {
		b.send(chatID, "Your cart is empty. Send /menu to browse.")
		return
	}

	items := sess.Cart.LineItems(b.catalog)
	var sb strings.Builder
	sb.WriteString("🛒 Your cart:\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, li := range items {
		fmt.Fprintf(&sb, "%d x %s — ₹%d\n", li.Quantity, li.Name, li.LineTotal())
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➖", "dec:"+li.ID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", li.Quantity), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("➕", "inc:"+li.ID),
		})
	}
	fee := b.cfg.Delivery.MinFee
	if res := sess.Resolver.Result(); res != nil {
		fee = res.DeliveryFee
	}
	subtotal := sess.Cart.Subtotal(b.catalog)
	fmt.Fprintf(&sb, "\nSubtotal: ₹%d\nDelivery Fee: ₹%d\nTotal: ₹%d", subtotal, fee, subtotal+fee)
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🗑 Clear", "clear"),
		tgbotapi.NewInlineKeyboardButtonData("✅ Checkout", "checkout"),
	})

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	data := cq.Data

	b.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	switch {
	case data == "cats":
		b.sendCategories(chatID)
	case data == "cart":
		b.sendCart(chatID)
	case strings.HasPrefix(data, "cat:"):
		b.sendCategory(chatID, strings.TrimPrefix(data, "cat:"))
	case strings.HasPrefix(data, "add:"), strings.HasPrefix(data, "inc:"):
		id := data[strings.Index(data, ":")+1:]
		sess := b.session(chatID)
		sess.Lock()
		sess.Cart.AddToCart(id)
		sess.Unlock()
		b.api.Request(tgbotapi.NewCallback(cq.ID, "Added ✅"))
	case strings.HasPrefix(data, "dec:"):
		sess := b.session(chatID)
		sess.Lock()
		sess.Cart.RemoveFromCart(strings.TrimPrefix(data, "dec:"))
		sess.Unlock()
		b.sendCart(chatID)
	case data == "clear":
		sess := b.session(chatID)
		sess.Lock()
		sess.Cart.ClearCart()
		sess.Unlock()
		b.send(chatID, "Cart cleared.")
	case data == "checkout":
		b.startCheckout(chatID)
	case data == "loc_lock":
		b.lockAndResolve(chatID)
	case data == "loc_retry":
		b.askLocation(chatID)
	case strings.HasPrefix(data, "pay:"):
		b.handlePaymentChoice(chatID, strings.TrimPrefix(data, "pay:"))
	case data == "order_place":
		b.placeOrder(chatID)
	}
}

// startCheckout begins the details conversation. An empty cart sends the
// customer back to the menu.
func (b *Bot) startCheckout(chatID int64) {
	sess := b.session(chatID)
	sess.Lock()
	empty := sess.Cart.IsEmpty()
	sess.Unlock()
	if empty {
		b.send(chatID, "Your cart is empty — add something from the menu first.")
		b.sendCategories(chatID)
		return
	}

	b.convosMu.Lock()
	b.convos[chatID] = &convoDraft{state: convoName}
	b.convosMu.Unlock()
	b.send(chatID, "Let's get your details. What's your full name?")
}

func (b *Bot) draft(chatID int64) *convoDraft {
	b.convosMu.RLock()
	d := b.convos[chatID]
	b.convosMu.RUnlock()
	return d
}

func (b *Bot) handleText(chatID int64, text string) {
	d := b.draft(chatID)
	if d == nil || d.state == convoIdle || text == "" {
		return
	}

	switch d.state {
	case convoName:
		d.details.Name = text
		d.state = convoPhone
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact("📞 Share phone number"),
			),
		)
		kb.OneTimeKeyboard = true
		kb.ResizeKeyboard = true
		msg := tgbotapi.NewMessage(chatID, "Phone number? You can share your contact or type it.")
		msg.ReplyMarkup = kb
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("send error: %v", err)
		}
	case convoPhone:
		d.details.Phone = text
		d.state = convoAddress
		b.send(chatID, "Street address?")
	case convoAddress:
		d.details.Address = text
		d.state = convoCity
		b.send(chatID, "City?")
	case convoCity:
		d.details.City = text
		d.state = convoPincode
		b.send(chatID, "Pincode?")
	case convoPincode:
		d.details.Pincode = text
		b.submitDetails(chatID, d)
	}
}

func (b *Bot) handleContact(chatID int64, phone string) {
	d := b.draft(chatID)
	if d == nil || d.state != convoPhone {
		return
	}
	d.details.Phone = phone
	d.state = convoAddress
	b.send(chatID, "Street address?")
}

func (b *Bot) submitDetails(chatID int64, d *convoDraft) {
	sess := b.session(chatID)
	sess.Lock()
	err := sess.Checkout.SubmitDetails(d.details)
	sess.Unlock()
	if err != nil {
		// Shouldn't happen in conversation order; restart the field loop.
		b.send(chatID, "Something's missing: "+err.Error()+". Let's try again.")
		d.state = convoName
		b.send(chatID, "What's your full name?")
		return
	}
	d.state = convoIdle
	b.askLocation(chatID)
}

func (b *Bot) askLocation(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Share delivery location"),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	msg := tgbotapi.NewMessage(chatID, "Where should we deliver? Share a location pin.")
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) handleLocation(chatID int64, lat, lng float64) {
	sess := b.session(chatID)
	sess.Lock()
	defer sess.Unlock()

	if sess.Checkout.Step() != services.StepLocation {
		return
	}
	if err := sess.Resolver.SetPosition(models.LatLng{Lat: lat, Lng: lng}); err != nil {
		b.send(chatID, "The delivery point is already confirmed. Unlock it first with /start over.")
		return
	}

	approxKm := services.HaversineDistanceKm(b.cfg.Shop.Lat, b.cfg.Shop.Lng, lat, lng)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm this point", "loc_lock"),
			tgbotapi.NewInlineKeyboardButtonData("📍 Resend", "loc_retry"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Got it — about %.1f km from the shop (straight line). Confirm this delivery point?", approxKm))
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

// lockAndResolve is the location step's submit: lock the point, then ask the
// routing service for the road distance and the fee.
func (b *Bot) lockAndResolve(chatID int64) {
	sess := b.session(chatID)
	sess.Lock()
	defer sess.Unlock()

	sess.Resolver.Lock()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	res, err := sess.Resolver.Resolve(ctx, b.routes)
	if err != nil {
		log.Printf("resolve distance chat=%d: %v", chatID, err)
		sess.Resolver.Unlock()
		b.send(chatID, "Couldn't work out the distance right now. Tap Confirm again to retry.")
		return
	}
	if err := sess.Checkout.ConfirmLocation(sess.Resolver); err != nil {
		b.send(chatID, "Error: "+err.Error())
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💵 Cash on Delivery", "pay:"+models.PaymentCash),
			tgbotapi.NewInlineKeyboardButtonData("📲 UPI", "pay:"+models.PaymentUPI),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Card", "pay:"+models.PaymentCard),
			tgbotapi.NewInlineKeyboardButtonData("🏦 Net Banking", "pay:"+models.PaymentNetBanking),
		),
	)
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Distance: %s (%s)\nDelivery fee: ₹%d\n\nHow would you like to pay?",
		res.DistanceText, res.DurationText, res.DeliveryFee,
	))
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) handlePaymentChoice(chatID int64, method string) {
	sess := b.session(chatID)
	sess.Lock()
	err := sess.Checkout.SetPayment(method, "")
	sess.Unlock()
	if err != nil {
		b.send(chatID, "Error: "+err.Error())
		return
	}
	b.send(chatID, "Now send a photo of your payment screenshot.")
}

// handlePhoto uploads the largest rendition of the screenshot as the payment
// proof.
func (b *Bot) handlePhoto(chatID int64, photos []tgbotapi.PhotoSize) {
	sess := b.session(chatID)
	sess.Lock()
	atPayment := sess.Checkout.Step() == services.StepPayment && sess.Checkout.PaymentMethod != ""
	sess.Unlock()
	if !atPayment {
		return
	}

	fileID := photos[len(photos)-1].FileID
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		log.Printf("get file chat=%d: %v", chatID, err)
		b.send(chatID, "Couldn't read that photo — please send it again.")
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("fetch file chat=%d: %v", chatID, err)
		b.send(chatID, "Couldn't read that photo — please send it again.")
		return
	}
	defer resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ref, err := b.uploads.UploadProof(ctx, fileID+".jpg", resp.Body)
	if err != nil {
		log.Printf("upload proof chat=%d: %v", chatID, err)
		b.send(chatID, "Upload failed — please send the screenshot again.")
		return
	}

	sess.Lock()
	sess.Checkout.SetProofRef(ref)
	sess.Unlock()

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧾 Place Order", "order_place"),
		),
	)
	msg := tgbotapi.NewMessage(chatID, "Payment proof received ✅ Ready to place your order?")
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) placeOrder(chatID int64) {
	sess := b.session(chatID)
	sess.Lock()
	defer sess.Unlock()

	order, err := services.BuildOrder(sess.Cart, b.catalog, sess.Checkout, sess.Resolver.Result())
	if err != nil {
		switch err {
		case services.ErrEmptyCart:
			b.send(chatID, "Your cart is empty — add something from the menu first.")
		case services.ErrPaymentRequired:
			b.send(chatID, "Payment Required: send your payment screenshot first.")
		default:
			b.send(chatID, "Error: "+err.Error())
		}
		return
	}

	message := services.FormatOrderMessage(order)
	link := services.WhatsAppLink(b.cfg.WhatsApp.Number, message)
	b.sessions.ResetFlow(sess)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📤 Send via WhatsApp", link),
		),
	)
	msg := tgbotapi.NewMessage(chatID, message+"\nTap below to send your order:")
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}
