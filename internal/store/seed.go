package store

import "time"

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// Seed loads the sample dataset used when no snapshot exists yet.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.leads = []Lead{
		{
			ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Phone: "(555) 123-4567",
			Status: LeadQualified, Source: "Zillow", PropertyInterest: "3BR House in Downtown",
			Budget: "$450,000 - $550,000", Notes: "Looking to close within 3 months. Pre-approved.",
			Tags:      []string{"pre-approved", "hot-lead"},
			CreatedAt: ts("2024-12-01T10:00:00Z"), LastContact: ts("2024-12-15T14:30:00Z"), DealValue: 495000,
		},
		{
			ID: "2", Name: "Michael Chen", Email: "michael.chen@email.com", Phone: "(555) 234-5678",
			Status: LeadShowing, Source: "Referral", PropertyInterest: "Luxury Condo",
			Budget: "$800,000 - $1,200,000", Notes: "High-net-worth client. Interested in waterfront properties.",
			Tags:      []string{"luxury", "investor"},
			CreatedAt: ts("2024-12-05T09:00:00Z"), LastContact: ts("2024-12-18T11:00:00Z"), DealValue: 950000,
		},
		{
			ID: "3", Name: "Emily Rodriguez", Email: "emily.r@email.com", Phone: "(555) 345-6789",
			Status: LeadNew, Source: "Website", PropertyInterest: "First-time buyer",
			Budget: "$250,000 - $350,000", Notes: "Needs guidance on mortgage options.",
			Tags:      []string{"first-time-buyer"},
			CreatedAt: ts("2024-12-18T08:00:00Z"), LastContact: ts("2024-12-18T08:00:00Z"), DealValue: 300000,
		},
		{
			ID: "4", Name: "David Williams", Email: "david.w@email.com", Phone: "(555) 456-7890",
			Status: LeadOffer, Source: "Facebook Ads", PropertyInterest: "Investment Property",
			Budget: "$600,000 - $800,000", Notes: "Cash buyer. Looking for rental income properties.",
			Tags:      []string{"investor", "cash-buyer"},
			CreatedAt: ts("2024-11-20T12:00:00Z"), LastContact: ts("2024-12-17T16:00:00Z"), DealValue: 725000,
		},
		{
			ID: "5", Name: "Jennifer Smith", Email: "jen.smith@email.com", Phone: "(555) 567-8901",
			Status: LeadContract, Source: "Open House", PropertyInterest: "Family Home",
			Budget: "$500,000 - $650,000", Notes: "Contract signed. Closing scheduled for Dec 28.",
			Tags:      []string{"closing-soon"},
			CreatedAt: ts("2024-11-15T10:00:00Z"), LastContact: ts("2024-12-16T09:00:00Z"), DealValue: 585000,
		},
		{
			ID: "6", Name: "Robert Taylor", Email: "r.taylor@email.com", Phone: "(555) 678-9012",
			Status: LeadContacted, Source: "Google Ads", PropertyInterest: "Downsizing",
			Budget: "$300,000 - $400,000", Notes: "Empty nesters looking to downsize from 4BR to 2BR.",
			Tags:      []string{"downsizing"},
			CreatedAt: ts("2024-12-10T14:00:00Z"), LastContact: ts("2024-12-14T10:00:00Z"), DealValue: 350000,
		},
	}

	s.st.tasks = []Task{
		{
			ID: "1", Title: "Follow up with Sarah Johnson", Description: "Discuss property options and schedule showing",
			DueDate: "2024-12-19", Priority: PriorityHigh, Status: TaskPending, Type: TaskCall, LeadID: "1",
			CreatedAt: ts("2024-12-15T10:00:00Z"),
		},
		{
			ID: "2", Title: "Prepare CMA for Michael Chen", Description: "Comparative market analysis for luxury condo listings",
			DueDate: "2024-12-20", Priority: PriorityHigh, Status: TaskPending, Type: TaskOther, LeadID: "2",
			CreatedAt: ts("2024-12-16T09:00:00Z"),
		},
		{
			ID: "3", Title: "Send welcome email to Emily", Description: "First-time buyer welcome package",
			DueDate: "2024-12-19", Priority: PriorityMedium, Status: TaskPending, Type: TaskEmail, LeadID: "3",
			CreatedAt: ts("2024-12-18T08:30:00Z"),
		},
		{
			ID: "4", Title: "Closing prep for Jennifer Smith", Description: "Final walkthrough and document preparation",
			DueDate: "2024-12-27", Priority: PriorityHigh, Status: TaskPending, Type: TaskMeeting, LeadID: "5",
			CreatedAt: ts("2024-12-16T11:00:00Z"),
		},
		{
			ID: "5", Title: "Review David Williams offer", Description: "Analyze counter-offer terms",
			DueDate: "2024-12-18", Priority: PriorityHigh, Status: TaskCompleted, Type: TaskOther, LeadID: "4",
			CreatedAt: ts("2024-12-17T14:00:00Z"),
		},
	}

	s.st.appointments = []Appointment{
		{
			ID: "1", Title: "Property Showing - Sarah Johnson", Description: "Tour of 3BR house at 123 Main St",
			Date: "2024-12-20", StartTime: "10:00", EndTime: "11:30", Type: AppointmentShowing, LeadID: "1",
			Location: "123 Main St, Downtown",
		},
		{
			ID: "2", Title: "Luxury Condo Tour - Michael Chen", Description: "Private viewing of waterfront condos",
			Date: "2024-12-21", StartTime: "14:00", EndTime: "16:00", Type: AppointmentShowing, LeadID: "2",
			Location: "Marina Bay Towers",
		},
		{
			ID: "3", Title: "Closing Meeting - Jennifer Smith", Description: "Final closing at title company",
			Date: "2024-12-28", StartTime: "09:00", EndTime: "11:00", Type: AppointmentClosing, LeadID: "5",
			Location: "First Title Company",
		},
	}

	s.st.emailTemplates = defaultEmailTemplates()

	s.st.workflows = []Workflow{
		{
			ID: "1", Name: "New Buyer Lead", Description: "Automated sequence for new buyer leads",
			Trigger: TriggerNewLead, IsActive: true, CreatedAt: ts("2024-11-01T00:00:00Z"),
			Actions: []WorkflowAction{
				{ID: "1", Type: ActionSendEmail, Config: map[string]interface{}{"templateId": "1"}, Order: 1},
				{ID: "2", Type: ActionWait, Config: map[string]interface{}{"days": 1}, Order: 2},
				{ID: "3", Type: ActionCreateTask, Config: map[string]interface{}{"title": "Follow up call", "type": "call"}, Order: 3},
			},
		},
		{
			ID: "2", Name: "Post-Showing Follow-up", Description: "Follow up after property showings",
			Trigger: TriggerStatusChange, TriggerValue: "showing", IsActive: true, CreatedAt: ts("2024-11-15T00:00:00Z"),
			Actions: []WorkflowAction{
				{ID: "1", Type: ActionWait, Config: map[string]interface{}{"hours": 2}, Order: 1},
				{ID: "2", Type: ActionSendEmail, Config: map[string]interface{}{"templateId": "2"}, Order: 2},
			},
		},
		{
			ID: "3", Name: "Closing Process", Description: "Tasks and reminders for closing",
			Trigger: TriggerStatusChange, TriggerValue: "contract", IsActive: true, CreatedAt: ts("2024-11-20T00:00:00Z"),
			Actions: []WorkflowAction{
				{ID: "1", Type: ActionCreateTask, Config: map[string]interface{}{"title": "Schedule final walkthrough", "type": "showing"}, Order: 1},
				{ID: "2", Type: ActionCreateTask, Config: map[string]interface{}{"title": "Prepare closing documents", "type": "other"}, Order: 2},
			},
		},
	}

	s.st.activities = []Activity{
		{ID: "1", Type: ActivityLeadCreated, Description: "New lead Emily Rodriguez added", LeadID: "3", CreatedAt: ts("2024-12-18T08:00:00Z")},
		{ID: "2", Type: ActivityEmailSent, Description: "Welcome email sent to Emily Rodriguez", LeadID: "3", CreatedAt: ts("2024-12-18T08:05:00Z")},
		{ID: "3", Type: ActivityTaskCompleted, Description: "Reviewed offer for David Williams", LeadID: "4", CreatedAt: ts("2024-12-17T16:00:00Z")},
		{ID: "4", Type: ActivityStatusChanged, Description: "David Williams moved to Offer stage", LeadID: "4", CreatedAt: ts("2024-12-17T14:00:00Z")},
		{ID: "5", Type: ActivityCallMade, Description: "Called Sarah Johnson about scheduling", LeadID: "1", CreatedAt: ts("2024-12-15T14:30:00Z")},
	}

	s.st.notifications = []Notification{
		{ID: "1", Title: "New Lead", Message: "Emily Rodriguez just submitted an inquiry", Type: NotifyInfo, Read: false, CreatedAt: ts("2024-12-18T08:00:00Z")},
		{ID: "2", Title: "Task Due", Message: "Follow up with Sarah Johnson is due today", Type: NotifyWarning, Read: false, CreatedAt: ts("2024-12-19T07:00:00Z")},
		{ID: "3", Title: "Deal Closed!", Message: "Congratulations! Jennifer Smith deal closed", Type: NotifySuccess, Read: true, CreatedAt: ts("2024-12-16T15:00:00Z")},
	}

	s.persistLocked()
}

// defaultEmailTemplates is the stock template library. The snapshot
// normally omits templates, so Restore falls back to this set whenever
// neither the snapshot nor the store carries any.
func defaultEmailTemplates() []EmailTemplate {
	return []EmailTemplate{
		{
			ID: "1", Name: "Welcome Email", Subject: "Welcome to {{agent_name}} Real Estate!",
			Body: "Hi {{first_name}},\n\nThank you for reaching out! I'm excited to help you find your perfect property.\n\nI'd love to learn more about what you're looking for. When would be a good time for a quick call?\n\nBest regards,\n{{agent_name}}",
			Category: CategoryWelcome,
		},
		{
			ID: "2", Name: "Follow-up After Showing", Subject: "Great seeing you today, {{first_name}}!",
			Body: "Hi {{first_name}},\n\nIt was wonderful meeting you today at {{property_address}}. I hope you found the property interesting!\n\nWhat did you think? I'd love to hear your thoughts and answer any questions.\n\nTalk soon,\n{{agent_name}}",
			Category: CategoryFollowUp,
		},
		{
			ID: "3", Name: "Closing Congratulations", Subject: "Congratulations on your new home!",
			Body: "Dear {{first_name}},\n\nCongratulations on closing on your new home at {{property_address}}!\n\nIt's been an absolute pleasure working with you. Please don't hesitate to reach out if you need anything.\n\nWelcome home!\n{{agent_name}}",
			Category: CategoryClosing,
		},
		{
			ID: "4", Name: "Review Request", Subject: "How was your experience?",
			Body: "Hi {{first_name}},\n\nNow that you've settled into your new home, I'd love to hear about your experience working together.\n\nWould you mind leaving a quick review? It helps others find great service too!\n\nThank you so much!\n{{agent_name}}",
			Category: CategoryReview,
		},
	}
}
