package api

import (
	"github.com/abhisek/estudos/internal/domain"
)

func ptr(f float64) *float64 { return &f }

// NewDemoGateway returns a MockGateway preloaded with a sample study plan,
// quiz and evaluation, used by --offline.
func NewDemoGateway() *MockGateway {
	quiz := domain.Quiz{
		ID:          1,
		Title:       "Fundamentos de Redes",
		Description: "Conceitos básicos do modelo TCP/IP.",
		Questions: []domain.Question{
			{
				ID:       1,
				Type:     domain.QuestionMultipleChoice,
				Question: "Qual camada é responsável pelo roteamento de pacotes?",
				Options:  []string{"Aplicação", "Transporte", "Rede", "Enlace"},
			},
			{
				ID:       2,
				Type:     domain.QuestionTrueFalse,
				Question: "O protocolo UDP garante a entrega ordenada dos dados.",
			},
			{
				ID:       3,
				Type:     domain.QuestionOpen,
				Question: "Explique a diferença entre um hub e um switch.",
			},
		},
	}

	plan := domain.StudyPlan{
		ID:            "demo-1",
		Title:         "Plano de Estudos: Redes de Computadores",
		Summary:       "Revisão do modelo TCP/IP com foco nas camadas de rede e transporte.",
		Topics:        []string{"Modelo TCP/IP", "Roteamento", "TCP e UDP"},
		KeyConcepts:   []string{"Endereçamento IP", "Handshake de três vias", "Controle de congestionamento"},
		EstimatedTime: "6 horas",
		StudySchedule: map[string][]string{
			"Dia 1": {"Ler o capítulo sobre o modelo TCP/IP", "Resumir as camadas"},
			"Dia 2": {"Estudar roteamento", "Fazer o quiz"},
		},
	}

	return &MockGateway{
		Upload: &UploadResult{
			StudyPlan: plan,
			Quizzes:   []domain.Quiz{quiz},
			SessionID: "demo-session",
		},
		Submit: &SubmitResult{
			Feedback: domain.Feedback{
				OverallPerformance: "Bom desempenho geral, revise a camada de transporte.",
				QuizEvaluations: []domain.QuizEvaluation{{
					Score:      ptr(66.7),
					Percentage: ptr(66.7),
					QuestionEvaluations: []domain.QuestionEvaluation{
						{QuestionID: 1, UserAnswer: "Rede", IsCorrect: true, Feedback: "Correto."},
						{QuestionID: 2, UserAnswer: domain.AnswerFalse, IsCorrect: true, Feedback: "Correto, o UDP não garante ordem."},
						{QuestionID: 3, IsCorrect: false, Feedback: "Mencione domínios de colisão."},
					},
				}},
				PerformanceAnalysis: &domain.PerformanceAnalysis{
					StrongAreas:            []string{"Camada de rede"},
					WeakAreas:              []string{"Equipamentos de enlace"},
					ImprovementSuggestions: []string{"Revise a diferença entre hubs e switches."},
				},
			},
		},
		Profile: &domain.UserProfile{Username: "demo", Email: "demo@estudos.local"},
		Login:   &LoginResult{Token: "demo-token"},
	}
}
