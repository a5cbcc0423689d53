package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/contact/dto"
	"adoptme_backend/internals/features/contact/model"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

type ContactController struct {
	DB *gorm.DB
}

func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{DB: db}
}

// CreateMessage accepts a contact-form submission from anyone.
func (ctrl *ContactController) CreateMessage(c *fiber.Ctx) error {
	var req dto.CreateContactMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	subject := req.Subject
	if subject == "" {
		subject = model.SubjectGeneral
	}

	msg := model.ContactMessage{
		MessageName:    req.Name,
		MessageEmail:   req.Email,
		MessagePhone:   req.Phone,
		MessageSubject: subject,
		MessageBody:    req.Message,
		MessageStatus:  model.MessageNew,
	}
	if err := ctrl.DB.Create(&msg).Error; err != nil {
		log.Println("[ERROR] create contact message:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"Your message has been sent, we will get back to you soon", fiber.Map{
			"contact_message": dto.ToContactMessageResponse(&msg),
		})
}

// GetMessages lists contact messages for admins.
func (ctrl *ContactController) GetMessages(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Model(&model.ContactMessage{})
	if status := c.Query("status"); status != "" {
		q = q.Where("message_status = ?", status)
	}
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("message_subject = ?", subject)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count messages")
	}

	var messages []model.ContactMessage
	if err := q.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&messages).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}

	out := make([]dto.ContactMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.ToContactMessageResponse(&messages[i]))
	}

	return helper.Success(c, "Messages retrieved", fiber.Map{
		"messages": out,
		"meta":     helper.BuildMeta(total, p),
	})
}

// UpdateMessage moves a message along its status table (new→read→replied)
// and optionally records admin notes. The status update is conditional on
// the status the admin saw.
func (ctrl *ContactController) UpdateMessage(c *fiber.Ctx) error {
	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid message id")
	}

	var req dto.UpdateContactMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var msg model.ContactMessage
	if err := ctrl.DB.First(&msg, "message_id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Message not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch message")
	}

	if !model.CanTransitionMessage(msg.MessageStatus, req.Status) {
		return helper.Error(c, fiber.StatusConflict,
			"Cannot move message from "+msg.MessageStatus+" to "+req.Status)
	}

	updates := map[string]interface{}{"message_status": req.Status}
	if req.AdminNotes != nil {
		updates["message_admin_notes"] = *req.AdminNotes
	}

	res := ctrl.DB.Model(&model.ContactMessage{}).
		Where("message_id = ? AND message_status = ?", messageID, msg.MessageStatus).
		Updates(updates)
	if res.Error != nil {
		log.Println("[ERROR] update contact message:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update message")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusConflict, "Message status changed concurrently, retry")
	}

	msg.MessageStatus = req.Status
	if req.AdminNotes != nil {
		msg.MessageAdminNotes = *req.AdminNotes
	}
	return helper.Success(c, "Message updated", fiber.Map{
		"contact_message": dto.ToContactMessageResponse(&msg),
	})
}

// GetActiveContactInfo returns the active organization contact info.
func (ctrl *ContactController) GetActiveContactInfo(c *fiber.Ctx) error {
	var info model.ContactInfo
	err := ctrl.DB.First(&info, "info_is_active = true").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contact information is not configured")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch contact information")
	}
	return helper.Success(c, "Contact information retrieved", fiber.Map{
		"contact_info": dto.ToContactInfoResponse(&info),
	})
}

// CreateContactInfo registers a new contact-info row. With activate=true the
// new row becomes the single active one: the deactivate-all and the insert
// run in one transaction, so readers never see two active rows.
func (ctrl *ContactController) CreateContactInfo(c *fiber.Ctx) error {
	var req dto.UpsertContactInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	info := model.ContactInfo{
		InfoOrganizationName: req.OrganizationName,
		InfoTagline:          req.Tagline,
		InfoPhonePrimary:     req.PhonePrimary,
		InfoPhoneSecondary:   req.PhoneSecondary,
		InfoEmailPrimary:     req.EmailPrimary,
		InfoEmailSecondary:   req.EmailSecondary,
		InfoAddressLine1:     req.AddressLine1,
		InfoAddressLine2:     req.AddressLine2,
		InfoCity:             req.City,
		InfoRegion:           req.Region,
		InfoPostalCode:       req.PostalCode,
		InfoOfficeHours:      req.OfficeHours,
		InfoEmergencyPhone:   req.EmergencyPhone,
		InfoIsActive:         req.Activate,
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if req.Activate {
			if err := tx.Model(&model.ContactInfo{}).
				Where("info_is_active = true").
				Update("info_is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&info).Error
	})
	if err != nil {
		log.Println("[ERROR] create contact info:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create contact information")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Contact information created", fiber.Map{
		"contact_info": dto.ToContactInfoResponse(&info),
	})
}

// ActivateContactInfo makes the given row the single active one.
func (ctrl *ContactController) ActivateContactInfo(c *fiber.Ctx) error {
	infoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contact info id")
	}

	var info model.ContactInfo
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&info, "info_id = ?", infoID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ContactInfo{}).
			Where("info_is_active = true AND info_id <> ?", infoID).
			Update("info_is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&info).Update("info_is_active", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contact info not found")
		}
		log.Println("[ERROR] activate contact info:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to activate contact information")
	}

	info.InfoIsActive = true
	return helper.Success(c, "Contact information activated", fiber.Map{
		"contact_info": dto.ToContactInfoResponse(&info),
	})
}
