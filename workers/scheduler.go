package workers

import (
	"fmt"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/config"
	"github.com/RichardKnop/machinery/v1/log"
	"github.com/RichardKnop/machinery/v1/tasks"

	"devconnector/schemas"
)

type Scheduler struct {
	server *machinery.Server
}

func NewScheduler(brokerUrl string) *Scheduler {
	cfg := &config.Config{
		DefaultQueue:    "tasks",
		ResultsExpireIn: int(time.Hour.Seconds()),
		Broker:          fmt.Sprintf("redis://%s", brokerUrl),
		ResultBackend:   fmt.Sprintf("redis://%s", brokerUrl),
		Redis: &config.RedisConfig{
			MaxIdle:                3,
			IdleTimeout:            240,
			ReadTimeout:            15,
			WriteTimeout:           15,
			ConnectTimeout:         15,
			NormalTasksPollPeriod:  1000,
			DelayedTasksPollPeriod: 500,
		},
	}

	server, err := machinery.NewServer(cfg)
	if err != nil {
		panic(err)
	}

	scheduler := &Scheduler{
		server: server,
	}
	return scheduler
}

func (sh *Scheduler) Listen() error {
	worker := sh.server.NewWorker("worker", 0)
	errorHandler := func(err error) {
		log.ERROR.Println("Something went wrong: ", err)
	}
	worker.SetErrorHandler(errorHandler)

	return worker.Launch()
}

func (sh *Scheduler) PublishPostLiked(postId schemas.PostId, actor schemas.UserId) error {
	return sh.publishNotification("NotifyPostLiked", postId, actor)
}

func (sh *Scheduler) PublishCommentAdded(postId schemas.PostId, actor schemas.UserId) error {
	return sh.publishNotification("NotifyCommentAdded", postId, actor)
}

func (sh *Scheduler) publishNotification(taskName string, postId schemas.PostId, actor schemas.UserId) error {
	task := &tasks.Signature{
		Name: taskName,
		Args: []tasks.Arg{
			{
				Type:  "string",
				Value: postId.Hex(),
			},
			{
				Type:  "string",
				Value: string(actor),
			},
		},
	}
	_, err := sh.server.SendTask(task)
	return err
}

func (sh *Scheduler) Register(executor NotificationTasksExecutor) error {
	return sh.server.RegisterTasks(executor.GetCommandsMapping())
}
