package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

type seedQuestion struct {
	prompt string
	answer string
}

type seedGroup struct {
	label     string
	questions []seedQuestion
}

// Seed loads the built-in question set if the catalog is empty.
// Idempotent: does nothing when any group already exists.
func Seed(ctx context.Context, logger *slog.Logger, store *Store) error {
	existing, err := store.ListGroups(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for gi, g := range defaultGroups {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO groups (id, label, position) VALUES (?, ?, ?)
		`, g.label, g.label, gi); err != nil {
			return fmt.Errorf("seeding group %q: %w", g.label, err)
		}
		for qi, q := range g.questions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO questions (id, group_id, prompt, answer, position)
				VALUES (?, ?, ?, ?, ?)
			`, questionID(g.label, qi), g.label, q.prompt, q.answer, qi); err != nil {
				return fmt.Errorf("seeding question %d of %q: %w", qi, g.label, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("catalog seeded", "groups", len(defaultGroups))
	return nil
}

// defaultGroups is the built-in workshop question set.
var defaultGroups = []seedGroup{
	{
		label: "FINANCIAL WELLBEING",
		questions: []seedQuestion{
			{
				prompt: "What is financial literacy?",
				answer: "The knowledge, financial skills and ability to manage your money effectively, which includes making informed decisions about budgeting, saving, investing, and managing debt.",
			},
			{
				prompt: "How does financial well-being affect student success?",
				answer: "Lack of financial well-being creates financial stress and less focus on studies (pressure such as more working hours). Financial stress hinders academic success: difficulty navigating relationships with wealthier peers, inability to purchase textbooks and essentials, having to prioritize work over studies.",
			},
			{
				prompt: "Why should students learn how to budget?",
				answer: "To avoid overspending and debt; to balance essential expenses while leaving some pocket money; identifying and correcting spending patterns; building emergency savings; preparation for financial success after graduation.",
			},
			{
				prompt: "What are some huge expenses in Canada as a student?",
				answer: "(Personal Answer based on experience)",
			},
		},
	},
	{
		label: "SELF REGULATION AND GOAL SETTING",
		questions: []seedQuestion{
			{
				prompt: "What are common challenges first-year students face?",
				answer: "Difference in culture; interpretation of university policies; comprehension of English in school settings or regular conversations; engaging with the university as a whole.",
			},
			{
				prompt: "What advice do you give to students who are going through something difficult?",
				answer: "Stay steadfast in your goals. Be specific with your goals and figure out whether they are short or long term. Different sacrifices need to be made, so be detailed with your planning. Goal setting: one step at a time, learn and adapt, never give up.",
			},
			{
				prompt: "What is self-regulation?",
				answer: "How much control we have over ourselves, through mental thoughts and physical actions. Could be referred to as discipline or self-control, so it has a lot of influence on goal-setting.",
			},
			{
				prompt: "How can students achieve their goals through self-regulation?",
				answer: "By strategically managing their thoughts, emotions, and behaviors: goal-setting, planning, monitoring progress, and reflecting on their learning.",
			},
			{
				prompt: "How do you think university will prepare you for your future goals?",
				answer: "(Personal Answer)",
			},
			{
				prompt: "What activities outside of university will also help you in the future?",
				answer: "(Personal Answer)",
			},
		},
	},
	{
		label: "U OF A CAREER CENTRE",
		questions: []seedQuestion{
			{
				prompt: "What are some skills acquired at university that will help (international) students in their employment?",
				answer: "Communication skills: learning and sharing information, talking clearly, listening carefully, and interacting actively. Cultural awareness: being sensitive to the differences and similarities between cultures when communicating with people from different backgrounds.",
			},
			{
				prompt: "How can international students build their employability skills?",
				answer: "Networking: building relationships before you need them, attending networking events in your areas of interest. Building work experience through internships, summer jobs, and part-time jobs, growing the transferable skills developed in the classroom.",
			},
			{
				prompt: "Effective Communication:",
				answer: "Participating in group projects and discussions; delivering a presentation in public; writing an essay or a lab report.",
			},
			{
				prompt: "What career supports on campus are valuable?",
				answer: "UofA Career Centre: appointments with a Career Advisor for career development, work search, and interview preparation. The Centre for Writers: one-on-one advising on written work and email etiquette. International Student Services: career advising within the Canadian work culture context.",
			},
			{
				prompt: "What programs are beneficial for international students?",
				answer: "UofA Career Centre: Graduate Internship Program (provides Canadian work experience). International Student Services: I-Work! Workshops.",
			},
		},
	},
	{
		label: "WRITING A RESUME AND COVER LETTER",
		questions: []seedQuestion{
			{
				prompt: "What do you need to find work experience?",
				answer: "A goal (what kind of experience do you want: skills or a paycheck?); a resume documenting your jobs or volunteer experiences; a cover letter carefully adapted for each position; an interview.",
			},
			{
				prompt: "What should be in your resume?",
				answer: "Contact information; education, certificates and awards, skills; experiences (work, volunteering, clubs, leadership opportunities); attributes.",
			},
			{
				prompt: "What are some points to note when formatting your resume?",
				answer: "Reverse chronological order; choose sections depending on the position; use a template and personalize it; consistent font size and colour; bullet points and margins; at most two pages; proofread for spelling, grammar, and punctuation errors.",
			},
			{
				prompt: "What are the elements of a cover letter?",
				answer: "Name, address, date; name and title of the recipient, organisation, address; salutation; opening paragraph introducing yourself; body stating your intent; appreciative and passionate closing paragraph; sign-off with your name.",
			},
		},
	},
	{
		label: "PREPARING FOR AN INTERVIEW",
		questions: []seedQuestion{
			{
				prompt: "In what situations might you need to be interviewed?",
				answer: "When applying for a job, a volunteer position, a promotion or an internal role change; also for research purposes, investigations, or journalism.",
			},
			{
				prompt: "What kind of questions do employers ask at job interviews?",
				answer: "About the individual; about the individual's experience; about problem-solving; about teamwork; about the position and the company.",
			},
			{
				prompt: "What do you say in a job interview?",
				answer: "Describe yourself and your profile; state clearly why you want the job; show that you are the best candidate for the position; talk about your strengths and weaknesses.",
			},
			{
				prompt: "Why do employers and managers want to interview potential workers?",
				answer: "To assess a candidate's skills, experience and cultural fit beyond the resume; to clarify info on the resume; to assess long-term potential; to minimize hiring mistakes and the costs associated with high turnover.",
			},
			{
				prompt: "If you were an employer, what questions would you ask a student?",
				answer: "(Personal Answer)",
			},
		},
	},
	{
		label: "TRANSFERABLE AND (INTERCULTURAL) COMMUNICATION SKILLS",
		questions: []seedQuestion{
			{
				prompt: "What skills are important in a Canadian workplace?",
				answer: "Proper language skills for effective workplace communication; direct and polite email etiquette; embracing cultural diversity and avoiding assumptions about people.",
			},
			{
				prompt: "How does one organize themselves to be productive?",
				answer: "Being independent is expected in the classroom and workplace. Organize yourself and manage your time; create a schedule and break up bigger tasks; prioritize to manage tasks.",
			},
			{
				prompt: "Collaboration skills and Do you think employees work alone?",
				answer: "Effective communication; responsibilities and expectations are shared; navigating difficult situations with team members; giving and receiving honest and constructive feedback.",
			},
			{
				prompt: "How do we overcome challenges, according to Sofia Elgueta?",
				answer: "Critical thinking and problem solving skills; conflict resolution skills (good listening and expressing yourself assertively); working on problems between people, which often come from poor communication, misunderstandings, or cultural differences.",
			},
			{
				prompt: "What are some similarities between the classroom and the workplace?",
				answer: "(Personal Answer)",
			},
		},
	},
}
