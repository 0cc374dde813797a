// cmd/console/admin.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/your-org/coursemarket-client/internal/domain/admin"
	"github.com/your-org/coursemarket-client/internal/domain/order"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office management",
	}

	cmd.AddCommand(
		newAdminProductsCommand(),
		newAdminCategoriesCommand(),
		newAdminDiscountsCommand(),
		newAdminCommentsCommand(),
		newAdminDeliveriesCommand(),
		newAdminOrdersCommand(),
		newAdminSalesCommand(),
	)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newAdminProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the course catalog",
	}

	req := &admin.ProductRequest{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			created, err := a.admin().products.Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created product %d\n", created.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&req.Name, "name", "", "course name")
	addCmd.Flags().StringVar(&req.Description, "description", "", "course description")
	addCmd.Flags().Int64Var(&req.Price, "price", 0, "price in cents")
	addCmd.Flags().IntVar(&req.Quantity, "quantity", 0, "available seats")
	addCmd.Flags().Int64Var(&req.CategoryID, "category", 0, "category id")
	addCmd.Flags().StringVar(&req.Instructor, "instructor", "", "instructor name")

	updateReq := &admin.ProductRequest{}
	updateCmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Replace a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := a.admin().products.Update(cmd.Context(), id, updateReq)
			if err != nil {
				return err
			}
			fmt.Printf("Updated product %d\n", updated.ID)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updateReq.Name, "name", "", "course name")
	updateCmd.Flags().StringVar(&updateReq.Description, "description", "", "course description")
	updateCmd.Flags().Int64Var(&updateReq.Price, "price", 0, "price in cents")
	updateCmd.Flags().IntVar(&updateReq.Quantity, "quantity", 0, "available seats")
	updateCmd.Flags().Int64Var(&updateReq.CategoryID, "category", 0, "category id")
	updateCmd.Flags().StringVar(&updateReq.Instructor, "instructor", "", "instructor name")

	cmd.AddCommand(
		addCmd,
		updateCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List all courses",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				store := a.admin().products
				items, err := store.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range items {
					fmt.Printf("%6d  %-40s  %8.2f  stock %d\n",
						p.ID, p.Name, p.GetFormattedPrice(), p.Quantity)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <product-id>",
			Short: "Delete a course",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return a.admin().products.Delete(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newAdminCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage course categories",
	}

	req := &admin.CategoryRequest{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			created, err := a.admin().categories.Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created category %d\n", created.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&req.Name, "name", "", "category name")
	addCmd.Flags().StringVar(&req.Description, "description", "", "category description")

	updateReq := &admin.CategoryRequest{}
	updateCmd := &cobra.Command{
		Use:   "update <category-id>",
		Short: "Replace a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = a.admin().categories.Update(cmd.Context(), id, updateReq)
			return err
		},
	}
	updateCmd.Flags().StringVar(&updateReq.Name, "name", "", "category name")
	updateCmd.Flags().StringVar(&updateReq.Description, "description", "", "category description")

	cmd.AddCommand(
		addCmd,
		updateCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List all categories",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				items, err := a.admin().categories.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, category := range items {
					fmt.Printf("%6d  %s\n", category.ID, category.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <category-id>",
			Short: "Delete a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return a.admin().categories.Delete(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newAdminDiscountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discounts",
		Short: "Manage product discounts",
	}

	req := &admin.DiscountRequest{}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Start a discount",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			created, err := a.admin().discounts.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created discount %d (%d%%)\n", created.ID, created.Rate)
			return nil
		},
	}
	createCmd.Flags().Int64Var(&req.ProductID, "product", 0, "product id")
	createCmd.Flags().IntVar(&req.Rate, "rate", 0, "discount rate percent")

	cmd.AddCommand(
		createCmd,
		&cobra.Command{
			Use:   "list",
			Short: "List all discounts",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				items, err := a.admin().discounts.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, d := range items {
					active := "inactive"
					if d.Active {
						active = "active"
					}
					fmt.Printf("%6d  product %d  %3d%%  %s\n", d.ID, d.ProductID, d.Rate, active)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "deactivate <discount-id>",
			Short: "End a discount",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				_, err = a.admin().discounts.Deactivate(cmd.Context(), id)
				return err
			},
		},
	)
	return cmd
}

func newAdminCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Moderate course reviews",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all reviews, including pending ones",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				items, err := a.admin().comments.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, comment := range items {
					state := "pending"
					if comment.Approved {
						state = "approved"
					}
					fmt.Printf("%6d  product %d  %d/5  %-8s  %s\n",
						comment.ID, comment.ProductID, comment.Rating, state, comment.Content)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "approve <comment-id>",
			Short: "Publish a review",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				_, err = a.admin().comments.Approve(cmd.Context(), id)
				return err
			},
		},
		&cobra.Command{
			Use:   "delete <comment-id>",
			Short: "Remove a review",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return a.admin().comments.Delete(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newAdminDeliveriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "Track shipments",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all deliveries",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				items, err := a.admin().deliveries.FetchAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, delivery := range items {
					fmt.Printf("%6d  order %d  %-10s  %s\n",
						delivery.ID, delivery.OrderID, delivery.Status, delivery.Courier)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "update-status <delivery-id> <status>",
			Short: "Move a delivery to a new status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				_, err = a.admin().deliveries.UpdateStatus(cmd.Context(), id, order.Status(args[1]))
				return err
			},
		},
	)
	return cmd
}

func newAdminOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage all orders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every order",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				orders, err := a.orders.AllOrders(cmd.Context())
				if err != nil {
					return err
				}
				for _, o := range orders {
					fmt.Printf("%6d  user %d  %-12s  %8.2f\n",
						o.ID, o.UserID, order.Display(o.Status).Label, o.GetFormattedTotal())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "update-status <order-id> <status>",
			Short: "Move an order to a new status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd.Context())
				if err != nil {
					return err
				}
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				_, err = a.orders.UpdateStatus(cmd.Context(), id, order.Status(args[1]))
				return err
			},
		},
	)
	return cmd
}

func newAdminSalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "Show the sales report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			report, err := a.admin().sales.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Orders: %d\nRevenue: %.2f\n",
				report.TotalOrders, float64(report.TotalRevenue)/100)
			for status, count := range report.SalesByStatus {
				fmt.Printf("  %-12s %d\n", status, count)
			}
			return nil
		},
	}
}
